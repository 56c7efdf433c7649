// Package groupsync keeps the local chatter group mirror in step with the org.
package groupsync

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/autocreate"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/controller/mirror"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/db/models"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/salesforce"
	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/sfid"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// GroupFetcher re-fetches authoritative collaboration group records.
// The salesforce engine implements it.
type GroupFetcher interface {
	FetchGroups(ctx context.Context, groupIDs []string) ([]salesforce.CollaborationGroup, error)
}

// Result summarizes one sync run.
type Result struct {
	Fetched int
	Created int
	Updated int
	Skipped int
	Deleted int64
}

// Syncer applies collaboration group trigger events to the mirror table.
type Syncer struct {
	db      *gorm.DB
	fetcher GroupFetcher
}

// New creates a Syncer.
func New(db *gorm.DB, fetcher GroupFetcher) *Syncer {
	return &Syncer{db: db, fetcher: fetcher}
}

// Sync handles created or updated groups. It re-fetches the authoritative
// records, creates mirrors for unseen groups whose collaboration type the
// auto-create policy allows, and refreshes every tracked field on mirrors
// that are still active. Inactive mirrors are left untouched. Running Sync
// twice for an unchanged source is a no-op on the stored field values.
func (s *Syncer) Sync(ctx context.Context, groupIDs []string) (*Result, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var res Result

	groups, err := s.fetcher.FetchGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	res.Fetched = len(groups)
	if len(groups) == 0 {
		return &res, nil
	}

	fetchedIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		fetchedIDs = append(fetchedIDs, g.ID)
	}

	existing, err := mirror.GetByGroupIDs(s.db, fetchedIDs)
	if err != nil {
		return nil, err
	}

	policy := &autocreate.Policy{}
	if err := policy.Load(s.db); err != nil {
		return nil, err
	}

	var (
		upserts []models.ChatterGroup
		updates []models.ChatterGroup
	)

	for _, g := range groups {
		long, err := sfid.To18(g.ID)
		if err != nil {
			log.Warn().Str("group_id", g.ID).Msg("skipping group with malformed id")
			res.Skipped++

			continue
		}

		current, known := existing[long]

		switch {
		case !known && policy.Allows(g.CollaborationType):
			record := fromCollaborationGroup(long, g)
			record.Active = true
			upserts = append(upserts, record)
			res.Created++
		case !known:
			// policy forbids auto-creating this type
			res.Skipped++
		case current.Active:
			record := fromCollaborationGroup(current.GroupID, g)
			record.ID = current.ID
			record.Active = true
			record.CreatedAt = current.CreatedAt
			updates = append(updates, record)
			res.Updated++
		default:
			// mirror was switched off, never reactivate or modify it
			res.Skipped++
		}
	}

	if err := mirror.UpsertBatch(s.db, upserts); err != nil {
		return nil, err
	}

	if err := mirror.UpdateBatch(s.db, updates); err != nil {
		return nil, err
	}

	log.Info().
		Int("fetched", res.Fetched).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Msg("group sync finished")

	return &res, nil
}

// Delete removes the mirrors of deleted groups, matching both id forms.
func (s *Syncer) Delete(_ context.Context, groupIDs []string) (*Result, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	deleted, err := mirror.DeleteByGroupIDs(s.db, groupIDs)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("deleted", deleted).Msg("group delete sync finished")

	return &Result{Deleted: deleted}, nil
}

// fromCollaborationGroup maps a fetched record onto a mirror row.
func fromCollaborationGroup(groupID string, g salesforce.CollaborationGroup) models.ChatterGroup {
	return models.ChatterGroup{
		GroupID:           groupID,
		Name:              g.Name,
		OwnerID:           g.OwnerID,
		Description:       g.Description,
		Email:             g.GroupEmail,
		MemberCount:       g.MemberCount,
		SmallPhotoURL:     g.SmallPhotoURL,
		MediumPhotoURL:    g.MediumPhotoURL,
		FullPhotoURL:      g.FullPhotoURL,
		BannerPhotoURL:    g.BannerPhotoURL,
		CollaborationType: g.CollaborationType,
		IsArchived:        g.IsArchived,
		IsBroadcast:       g.IsBroadcast,
	}
}
