package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"study_keep/internal/model"
)

// maxBodyBytes はJSONボディの上限
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラー。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.Join(model.ErrInvalidInput, errors.New("empty request body"))
		}
		return errors.Join(model.ErrInvalidInput, err)
	}
	return nil
}
