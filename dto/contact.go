package dto

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,not_blank,max=255"`
	Email   string `json:"email" validate:"required,simple_email,max=255"`
	Subject string `json:"subject" validate:"required,not_blank,max=255"`
	Message string `json:"message" validate:"required,contact_message"`
}

func (c CreateContactRequest) Validate() error {
	return GetValidator().Struct(c)
}

type ContactCountResponse struct {
	Count int64 `json:"count"`
}
