package port

type FormValidatorPort interface {
	Struct(form any) error
}
