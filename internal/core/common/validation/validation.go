package validation

import (
	errors "github.com/abtree/payment-backend/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

// Required fails with message when the value is absent: empty string, nil
// pointer, or nil map.
func (fv *FieldValidator) Required(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return errors.NewValidationError(message)
			}
		case *string:
			if v == nil || *v == "" {
				return errors.NewValidationError(message)
			}
		case *float64:
			if v == nil {
				return errors.NewValidationError(message)
			}
		case nil:
			return errors.NewValidationError(message)
		}
		return nil
	})
	return fv
}

// GreaterThan fails with message when a numeric value is not strictly above min.
// Absent values are ignored so Required decides presence.
func (fv *FieldValidator) GreaterThan(min float64, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case float64:
			if v <= min {
				return errors.NewValidationError(message)
			}
		case *float64:
			if v != nil && *v <= min {
				return errors.NewValidationError(message)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs the field validators in declaration order and returns the
// first failure, matching the request validation order of the endpoints.
func (v *ValidationBuilder) Validate() *errors.AppError {
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
