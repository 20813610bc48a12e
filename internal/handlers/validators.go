package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return utils.IsCurrencyCode(fl.Field().String())
		}); err != nil {
			registerValidatorsErr = fmt.Errorf("failed to register currency validator: %w", err)
		}
	})
	return registerValidatorsErr
}
