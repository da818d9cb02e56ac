package usersync

import (
	"testing"

	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

func TestNeedsUpdateDetectsDivergence(t *testing.T) {
	stored := &models.User{FirstName: "Jane", LastName: "Doe", Username: "jd"}
	asserted := models.AssertedUser{FirstName: "Jane", LastName: "Doe", Username: "jd2"}

	if !needsUpdate(stored, asserted) {
		t.Error("needsUpdate = false, want true for changed username")
	}
}

func TestNeedsUpdateFalseWhenIdentical(t *testing.T) {
	stored := &models.User{FirstName: "Jane", LastName: "Doe", Username: "jd", PhotoURL: "p", Language: "en"}
	asserted := models.AssertedUser{FirstName: "Jane", LastName: "Doe", Username: "jd", PhotoURL: "p", LanguageCode: "en"}

	if needsUpdate(stored, asserted) {
		t.Error("needsUpdate = true, want false for identical fields")
	}
}

func TestApplyAssertedCopiesAllFields(t *testing.T) {
	stored := &models.User{}
	asserted := models.AssertedUser{
		FirstName:    "Jane",
		LastName:     "Doe",
		Username:     "jd",
		PhotoURL:     "https://example.com/p.jpg",
		LanguageCode: "en",
		CanWriteToPM: true,
	}

	applyAsserted(stored, asserted)

	if stored.FirstName != "Jane" || stored.LastName != "Doe" || stored.Username != "jd" ||
		stored.PhotoURL != "https://example.com/p.jpg" || stored.Language != "en" || !stored.CanWriteToPM {
		t.Errorf("stored after apply = %+v", stored)
	}
}
