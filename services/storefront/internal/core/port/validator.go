package port

// FormValidatorPort проверяет формы; ошибки полей возвращаются как formvalidation.FieldErrors.
type FormValidatorPort interface {
	Struct(form any) error
}
