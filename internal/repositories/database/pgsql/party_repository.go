package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	"github.com/SscSPs/cek_senet_app/internal/models"
	"github.com/SscSPs/cek_senet_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partyColumns = `party_id, name, party_type, tax_number, phone, email, address, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	BaseRepository
}

func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID, &m.Name, &m.PartyType, &m.TaxNumber, &m.Phone, &m.Email, &m.Address, &m.Notes, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO parties (`+partyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.PartyID, m.Name, m.PartyType, m.TaxNumber, m.Phone, m.Email, m.Address, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert party "+m.PartyID, err)
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	m, err := scanParty(r.Pool.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE party_id = $1;`, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find party by ID "+partyID, err)
	}
	p := mapping.ToDomainParty(m)
	return &p, nil
}

func (r *PgxPartyRepository) ListParties(ctx context.Context, filter domain.PartyFilter, limit int, offset int) ([]domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE TRUE`
	args := []any{}
	if filter.PartyType != nil {
		args = append(args, string(*filter.PartyType))
		query += " AND party_type = $" + strconv.Itoa(len(args))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		p := "$" + strconv.Itoa(len(args))
		query += " AND (name ILIKE " + p + " OR tax_number ILIKE " + p + ")"
	}
	query += " ORDER BY name ASC, party_id ASC"
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
		query += " LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query parties", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan party row", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating party rows", err)
	}
	return parties, nil
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE parties
		SET name = $1, party_type = $2, tax_number = $3, phone = $4, email = $5, address = $6, notes = $7,
		    is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE party_id = $11;`,
		m.Name, m.PartyType, m.TaxNumber, m.Phone, m.Email, m.Address, m.Notes,
		m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.PartyID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update party "+m.PartyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM parties WHERE party_id = $1;`, partyID)
	if err != nil {
		if hasSQLState(err, pgForeignKeyViolation) {
			return apperrors.NewAppError(409, "party "+partyID+" is referenced by documents", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to delete party "+partyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
