// Package artworks implements ownership-scoped CRUD over gallery
// records. Every query filters by the authenticated user's ID as well
// as the record ID, so one user can never observe or mutate another
// user's artwork; a miss on either condition surfaces as not-found.
package artworks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/galleria-go/apperror"
)

// Service defines the artwork operations. Handlers depend on this
// interface rather than the pgx-backed implementation.
type Service interface {
	Create(ctx context.Context, userID int, input ArtworkInput) (*Artwork, error)
	List(ctx context.Context, userID int) ([]Artwork, error)
	GetByID(ctx context.Context, userID, artworkID int) (*Artwork, error)
	Update(ctx context.Context, userID, artworkID int, input ArtworkInput) (*Artwork, error)
	Delete(ctx context.Context, userID, artworkID int) error
}

type serviceImpl struct {
	db *pgxpool.Pool
}

// NewService creates the pgx-backed artwork service.
func NewService(db *pgxpool.Pool) Service {
	return &serviceImpl{db: db}
}

const artworkColumns = "id, user_id, image, title, artist, year, category, description"

func scanArtwork(row pgx.Row) (*Artwork, error) {
	var a Artwork
	err := row.Scan(&a.ID, &a.UserID, &a.Image, &a.Title, &a.Artist, &a.Year, &a.Category, &a.Description)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new record owned by userID and returns the full row.
func (s *serviceImpl) Create(ctx context.Context, userID int, input ArtworkInput) (*Artwork, error) {
	query := fmt.Sprintf(`INSERT INTO artworks (user_id, image, title, artist, year, category, description)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING %s`, artworkColumns)
	artwork, err := scanArtwork(s.db.QueryRow(ctx, query,
		userID, input.Image, input.Title, input.Artist, input.Year, input.Category, input.Description,
	))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to save artwork", err)
	}
	return artwork, nil
}

// List returns every record owned by userID, newest first. The result
// is never nil, so an empty gallery serializes as [].
func (s *serviceImpl) List(ctx context.Context, userID int) ([]Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM artworks WHERE user_id = $1 ORDER BY id DESC`, artworkColumns)
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list artworks", err)
	}
	defer rows.Close()

	artworks := []Artwork{}
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan artwork row", err)
		}
		artworks = append(artworks, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read artwork rows", err)
	}
	return artworks, nil
}

// GetByID returns the record only when both the ID and the owner
// match. A record owned by someone else is reported as not-found, not
// forbidden, so its existence is not leaked.
func (s *serviceImpl) GetByID(ctx context.Context, userID, artworkID int) (*Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM artworks WHERE id = $1 AND user_id = $2`, artworkColumns)
	artwork, err := scanArtwork(s.db.QueryRow(ctx, query, artworkID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("artwork not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get artwork", err)
	}
	return artwork, nil
}

// Update replaces all mutable fields, filtered by ID and owner. Zero
// matched rows means either the record does not exist or it belongs to
// someone else; the two cases share one message on purpose.
func (s *serviceImpl) Update(ctx context.Context, userID, artworkID int, input ArtworkInput) (*Artwork, error) {
	query := fmt.Sprintf(`UPDATE artworks
	          SET image = $1, title = $2, artist = $3, year = $4, category = $5, description = $6
	          WHERE id = $7 AND user_id = $8
	          RETURNING %s`, artworkColumns)
	artwork, err := scanArtwork(s.db.QueryRow(ctx, query,
		input.Image, input.Title, input.Artist, input.Year, input.Category, input.Description,
		artworkID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("artwork not found or unauthorized", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update artwork", err)
	}
	return artwork, nil
}

// Delete removes the record filtered by ID and owner. Matching zero
// rows is still a success; delete deliberately skips the existence
// check that Update performs.
func (s *serviceImpl) Delete(ctx context.Context, userID, artworkID int) error {
	_, err := s.db.Exec(ctx, `DELETE FROM artworks WHERE id = $1 AND user_id = $2`, artworkID, userID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete artwork", err)
	}
	return nil
}
