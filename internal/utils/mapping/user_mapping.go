package mapping

import (
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Username:               d.Username,
		PasswordHash:           nullString(&d.PasswordHash),
		Name:                   d.Name,
		Email:                  nullString(&d.Email),
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       nullString(&d.RefreshTokenHash),
		RefreshTokenExpiryTime: nullTime(d.RefreshTokenExpiryTime),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Username:               m.Username,
		PasswordHash:           m.PasswordHash.String,
		Name:                   m.Name,
		Email:                  m.Email.String,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		DeletedAt:              m.DeletedAt,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: timePtr(m.RefreshTokenExpiryTime),
	}
}
