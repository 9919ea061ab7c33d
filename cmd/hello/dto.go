package main

import "github.com/km-arc/go-nestforge/framework/http/validation"

type CreateUserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d CreateUserDTO) Validate() error {
	return validation.Make(map[string]string{
		"name":  d.Name,
		"email": d.Email,
	}, validation.Rules{
		"name":  "required|max:100",
		"email": "required|email",
	}).Validate()
}

// UpdateUserDTO is a partial update; nil fields are left unchanged.
type UpdateUserDTO struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (d UpdateUserDTO) Validate() error {
	return validation.Make(map[string]string{
		"name":  deref(d.Name),
		"email": deref(d.Email),
	}, validation.Rules{
		"name":  "nullable|max:100",
		"email": "nullable|email",
	}).Validate()
}

type CreateSettingDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (d CreateSettingDTO) Validate() error {
	return validation.Make(map[string]string{
		"key":   d.Key,
		"value": d.Value,
	}, validation.Rules{
		"key":   "required|alpha_dash",
		"value": "required",
	}).Validate()
}

type UpdateSettingDTO struct {
	Key   *string `json:"key"`
	Value *string `json:"value"`
}

func (d UpdateSettingDTO) Validate() error {
	return validation.Make(map[string]string{
		"key": deref(d.Key),
	}, validation.Rules{
		"key": "nullable|alpha_dash",
	}).Validate()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
