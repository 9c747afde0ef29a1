// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"vocab_review_keep/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_BODY", "リクエストボディが必要です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_BODY", "リクエストボディの形式が不正です。", "", model.ErrInvalidInput)
	}
	return nil
}

// DecodeAndValidate はデコードとバリデーションをまとめて行います
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return NewValidationErrorResponse(verrs)
		}
		return model.NewAppError("VALIDATION_ERROR", "入力値の検証に失敗しました。", "", model.ErrInvalidInput)
	}
	return nil
}
