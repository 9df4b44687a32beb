package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"study_keep/internal/model"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータです。
var Validator *validator.Validate

// Trans はバリデーションエラーの翻訳に使います。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"mastery_score":      "習熟度",
	"revision_count":     "復習回数",
	"status":             "ステータス",
	"score":              "スコア",
	"minutes":            "学習時間",
	"date":               "日付",
	"name":               "名前",
	"tier":               "ティア",
	"title":              "タイトル",
	"file_url":           "ファイルURL",
	"topic_name":         "トピック名",
	"sleep_hours":        "睡眠時間",
	"energy_level":       "エネルギー",
	"stress_level":       "ストレス",
	"effectiveness":      "効果",
	"revision_intervals": "復習間隔",
}

func init() {
	Validator = validator.New()

	// エラーのフィールド名はJSONタグ名にする
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	override := func(tag, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translateField(fe.Field()), fe.Param())
			return t
		})
	}
	override("required", "{0}は必須項目です。")
	override("oneof", "{0}は[{1}]のいずれかを指定してください。")
	override("datetime", "{0}は{1}の形式で指定してください。")
}

func translateField(field string) string {
	if name, ok := fieldNameTranslations[field]; ok {
		return name
	}
	return field
}

// ValidateStruct は構造体を検証し、最初のエラーを VALIDATION_ERROR の AppError にして返します。
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	first := validationErrors[0]
	return model.NewAppError("VALIDATION_ERROR", first.Translate(Trans), first.Field(), model.ErrInvalidInput)
}
