// Code scaffolded by goctl. Safe to edit.
package config

import (
	"github.com/suleymanmyradov/lingua-gateway/shared/config"
)

type Config = config.Config
