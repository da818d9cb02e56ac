package apierr

import "testing"

func TestOKUsesSuccessStatus(t *testing.T) {
	env := OK(map[string]string{"id": "1"}, "")
	if env.Status != "success" {
		t.Errorf("status = %q, want %q", env.Status, "success")
	}
	if env.Message != "" {
		t.Errorf("message = %q, want empty", env.Message)
	}
}

func TestOKCarriesCallerMessage(t *testing.T) {
	env := OK(nil, "ok")
	if env.Status != "success" {
		t.Errorf("status = %q, want %q", env.Status, "success")
	}
	if env.Message != "ok" {
		t.Errorf("message = %q, want %q", env.Message, "ok")
	}
}

func TestFromErrorMapsKindToStatusCode(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{BadRequest("bad"), 400},
		{Unauthorized("nope"), 401},
		{Forbidden("nope"), 403},
		{NotFound("missing"), 404},
		{Conflict("exists"), 409},
		{Timeout("slow"), 504},
		{Internal("boom", nil), 500},
	}

	for _, c := range cases {
		status, env := FromError(c.err)
		if status != c.want {
			t.Errorf("FromError(%v) status = %d, want %d", c.err.Kind, status, c.want)
		}
		if env.Status != "error" {
			t.Errorf("FromError(%v) envelope status = %q, want %q", c.err.Kind, env.Status, "error")
		}
	}
}

func TestFromErrorHidesUnrecognizedErrorMessage(t *testing.T) {
	status, env := FromError(errUnrecognized{})
	if status != 500 {
		t.Errorf("status = %d, want 500", status)
	}
	if env.Message != "internal server error" {
		t.Errorf("message = %q, want generic internal message", env.Message)
	}
}

type errUnrecognized struct{}

func (errUnrecognized) Error() string { return "leaked detail" }
