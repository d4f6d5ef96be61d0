package dto

import (
	"mime/multipart"

	"cowork/internal/domains/kyc/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type SubmitKycRequest struct {
	Type      model.Type `json:"type"       validate:"required,enum"`
	BookingID string     `json:"booking_id" validate:"omitempty,uuid"`
	Name      string     `json:"name"       validate:"required,max=150"`
	Email     string     `json:"email"      validate:"required,email"`
	Mobile    string     `json:"mobile"     validate:"required,min=10,max=15"`
	GSTNumber string     `json:"gst_number" validate:"omitempty,max=20"`

	IDFront           *multipart.FileHeader `json:"id_front"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	IDBack            *multipart.FileHeader `json:"id_back"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	PAN               *multipart.FileHeader `json:"pan"                validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	Photo             *multipart.FileHeader `json:"photo"              validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	PaymentScreenshot *multipart.FileHeader `json:"payment_screenshot" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`

	CompanyName                string                `json:"company_name"                 validate:"omitempty,max=200"`
	CertificateOfIncorporation *multipart.FileHeader `json:"certificate_of_incorporation" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	CompanyPAN                 *multipart.FileHeader `json:"company_pan"                  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	DirectorName               string                `json:"director_name"                validate:"omitempty,max=150"`
	DIN                        string                `json:"din"                          validate:"omitempty,max=20"`
	DirectorPAN                *multipart.FileHeader `json:"director_pan"                 validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	DirectorPhoto              *multipart.FileHeader `json:"director_photo"               validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	DirectorIDFront            *multipart.FileHeader `json:"director_id_front"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	DirectorIDBack             *multipart.FileHeader `json:"director_id_back"             validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

// Missing names the fields the submission type requires but were not sent.
func (r *SubmitKycRequest) Missing() []string {
	var required map[string]bool

	switch r.Type {
	case model.TypeFreelancer:
		required = map[string]bool{
			"id_front": r.IDFront != nil,
			"id_back":  r.IDBack != nil,
			"pan":      r.PAN != nil,
			"photo":    r.Photo != nil,
		}
	case model.TypeCompany:
		required = map[string]bool{
			"company_name":                 r.CompanyName != constant.Empty,
			"director_name":                r.DirectorName != constant.Empty,
			"din":                          r.DIN != constant.Empty,
			"certificate_of_incorporation": r.CertificateOfIncorporation != nil,
			"company_pan":                  r.CompanyPAN != nil,
		}
	}

	missing := make([]string, 0)

	for _, field := range requiredOrder {
		if present, ok := required[field]; ok && !present {
			missing = append(missing, field)
		}
	}

	return missing
}

var requiredOrder = []string{
	"id_front", "id_back", "pan", "photo",
	"company_name", "director_name", "din", "certificate_of_incorporation", "company_pan",
}

// Documents returns every uploaded file keyed by its column.
func (r *SubmitKycRequest) Documents() map[string]*multipart.FileHeader {
	documents := map[string]*multipart.FileHeader{
		"id_front":           r.IDFront,
		"id_back":            r.IDBack,
		"pan":                r.PAN,
		"photo":              r.Photo,
		"payment_screenshot": r.PaymentScreenshot,
	}

	if r.Type == model.TypeCompany {
		documents["certificate_of_incorporation"] = r.CertificateOfIncorporation
		documents["company_pan"] = r.CompanyPAN
		documents["director_pan"] = r.DirectorPAN
		documents["director_photo"] = r.DirectorPhoto
		documents["director_id_front"] = r.DirectorIDFront
		documents["director_id_back"] = r.DirectorIDBack
	}

	for field, header := range documents {
		if header == nil {
			delete(documents, field)
		}
	}

	return documents
}

// ToModel builds a pending submission from the request and the stored document URLs.
func (r *SubmitKycRequest) ToModel(user string, urls map[string]string) model.Kyc {
	kyc := model.Kyc{
		ID:                         uuid.NewString(),
		UserID:                     user,
		BookingID:                  r.BookingID,
		Type:                       r.Type,
		Name:                       r.Name,
		Email:                      r.Email,
		Mobile:                     r.Mobile,
		GSTNumber:                  r.GSTNumber,
		IDFront:                    urls["id_front"],
		IDBack:                     urls["id_back"],
		PAN:                        urls["pan"],
		Photo:                      urls["photo"],
		PaymentScreenshot:          urls["payment_screenshot"],
		CertificateOfIncorporation: urls["certificate_of_incorporation"],
		CompanyPAN:                 urls["company_pan"],
		DirectorPAN:                urls["director_pan"],
		DirectorPhoto:              urls["director_photo"],
		DirectorIDFront:            urls["director_id_front"],
		DirectorIDBack:             urls["director_id_back"],
		Status:                     model.StatusPending,
		Metadata:                   gModel.NewMetadata(user, timezone.Now()),
	}

	if r.Type == model.TypeCompany {
		kyc.CompanyName = r.CompanyName
		kyc.DirectorName = r.DirectorName
		kyc.DIN = r.DIN
	}

	return kyc
}

type VerifyKycRequest struct {
	Status  string `json:"status"  validate:"required"`
	Remarks string `json:"remarks" validate:"omitempty,max=500"`
}

type KycResponse struct {
	ID                         string       `json:"id"`
	UserID                     string       `json:"user_id"`
	BookingID                  string       `json:"booking_id,omitempty"`
	Type                       model.Type   `json:"type"`
	Name                       string       `json:"name"`
	Email                      string       `json:"email"`
	Mobile                     string       `json:"mobile"`
	GSTNumber                  string       `json:"gst_number,omitempty"`
	IDFront                    string       `json:"id_front,omitempty"`
	IDBack                     string       `json:"id_back,omitempty"`
	PAN                        string       `json:"pan,omitempty"`
	Photo                      string       `json:"photo,omitempty"`
	PaymentScreenshot          string       `json:"payment_screenshot,omitempty"`
	CompanyName                string       `json:"company_name,omitempty"`
	CertificateOfIncorporation string       `json:"certificate_of_incorporation,omitempty"`
	CompanyPAN                 string       `json:"company_pan,omitempty"`
	DirectorName               string       `json:"director_name,omitempty"`
	DIN                        string       `json:"din,omitempty"`
	DirectorPAN                string       `json:"director_pan,omitempty"`
	DirectorPhoto              string       `json:"director_photo,omitempty"`
	DirectorIDFront            string       `json:"director_id_front,omitempty"`
	DirectorIDBack             string       `json:"director_id_back,omitempty"`
	Status                     model.Status `json:"status"`
	Remarks                    string       `json:"remarks,omitempty"`
	gDto.Metadata
}

func (r *KycResponse) FromModel(m model.Kyc) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.BookingID = m.BookingID
	r.Type = m.Type
	r.Name = m.Name
	r.Email = m.Email
	r.Mobile = m.Mobile
	r.GSTNumber = m.GSTNumber
	r.IDFront = m.IDFront
	r.IDBack = m.IDBack
	r.PAN = m.PAN
	r.Photo = m.Photo
	r.PaymentScreenshot = m.PaymentScreenshot
	r.CompanyName = m.CompanyName
	r.CertificateOfIncorporation = m.CertificateOfIncorporation
	r.CompanyPAN = m.CompanyPAN
	r.DirectorName = m.DirectorName
	r.DIN = m.DIN
	r.DirectorPAN = m.DirectorPAN
	r.DirectorPhoto = m.DirectorPhoto
	r.DirectorIDFront = m.DirectorIDFront
	r.DirectorIDBack = m.DirectorIDBack
	r.Status = m.Status
	r.Remarks = m.Remarks
	r.Metadata.FromModel(m.Metadata)
}

type GetKycsResponse struct {
	Kycs      []KycResponse `json:"kycs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetKycsResponse) FromModels(models []model.Kyc, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Kycs = make([]KycResponse, len(models))
	for i, mod := range models {
		r.Kycs[i].FromModel(mod)
	}
}
