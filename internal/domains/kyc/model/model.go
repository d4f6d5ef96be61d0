package model

import (
	"strings"

	"cowork/shared/model"
)

const (
	TableName  = "kyc_details"
	EntityName = "kyc"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldBookingID = "booking_id"
	FieldType      = "type"
	FieldStatus    = "status"
	FieldRemarks   = "remarks"
)

type Type string

const (
	TypeFreelancer Type = "Freelancer"
	TypeCompany    Type = "Company"
)

func (t Type) Valid() bool {
	return t == TypeFreelancer || t == TypeCompany
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"

	// StatusNone is reported for users that never submitted KYC. It is never stored.
	StatusNone Status = "None"
)

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))

	return ok
}

func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending, true
	case "approve", "approved":
		return StatusApproved, true
	case "reject", "rejected":
		return StatusRejected, true
	default:
		return "", false
	}
}

func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

type Kyc struct {
	ID                         string `db:"id"`
	UserID                     string `db:"user_id"`
	BookingID                  string `db:"booking_id"`
	Type                       Type   `db:"type"`
	Name                       string `db:"name"`
	Email                      string `db:"email"`
	Mobile                     string `db:"mobile"`
	GSTNumber                  string `db:"gst_number"`
	IDFront                    string `db:"id_front"`
	IDBack                     string `db:"id_back"`
	PAN                        string `db:"pan"`
	Photo                      string `db:"photo"`
	PaymentScreenshot          string `db:"payment_screenshot"`
	CompanyName                string `db:"company_name"`
	CertificateOfIncorporation string `db:"certificate_of_incorporation"`
	CompanyPAN                 string `db:"company_pan"`
	DirectorName               string `db:"director_name"`
	DIN                        string `db:"din"`
	DirectorPAN                string `db:"director_pan"`
	DirectorPhoto              string `db:"director_photo"`
	DirectorIDFront            string `db:"director_id_front"`
	DirectorIDBack             string `db:"director_id_back"`
	Status                     Status `db:"status"`
	Remarks                    string `db:"remarks"`
	model.Metadata
}

// DisplayName is the company name for companies and the person's name otherwise.
func (k Kyc) DisplayName() string {
	if k.Type == TypeCompany && k.CompanyName != "" {
		return k.CompanyName
	}

	return k.Name
}

// Files lists every stored document URL of the submission.
func (k Kyc) Files() []string {
	return []string{
		k.IDFront, k.IDBack, k.PAN, k.Photo, k.PaymentScreenshot,
		k.CertificateOfIncorporation, k.CompanyPAN,
		k.DirectorPAN, k.DirectorPhoto, k.DirectorIDFront, k.DirectorIDBack,
	}
}

// Standing is the status reported to the user, None when nothing was submitted,
// and whether it grants member pricing.
func (k Kyc) Standing() (Status, bool) {
	if k.ID == "" {
		return StatusNone, false
	}

	return k.Status, k.Status == StatusApproved
}
