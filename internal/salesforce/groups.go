package salesforce

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/sfid"
)

// CollaborationGroup is the subset of CollaborationGroup fields the mirror tracks.
type CollaborationGroup struct {
	ID                string `json:"Id"`
	Name              string `json:"Name"`
	OwnerID           string `json:"OwnerId"`
	Description       string `json:"Description"`
	GroupEmail        string `json:"GroupEmail"`
	MemberCount       int    `json:"MemberCount"`
	SmallPhotoURL     string `json:"SmallPhotoUrl"`
	MediumPhotoURL    string `json:"MediumPhotoUrl"`
	FullPhotoURL      string `json:"FullPhotoUrl"`
	BannerPhotoURL    string `json:"BannerPhotoUrl"`
	CollaborationType string `json:"CollaborationType"`
	IsArchived        bool   `json:"IsArchived"`
	IsBroadcast       bool   `json:"IsBroadcast"`
	NetworkID         string `json:"NetworkId"`
}

const groupFieldList = "Id,Name,OwnerId,Description,GroupEmail,MemberCount," +
	"SmallPhotoUrl,MediumPhotoUrl,FullPhotoUrl,BannerPhotoUrl," +
	"CollaborationType,IsArchived,IsBroadcast"

// FetchGroups queries the authoritative field values for the given group ids.
// Trigger payloads do not carry the photo urls, so sync always re-fetches.
// Invalid ids are dropped from the query; ids the org no longer knows are
// simply missing from the result.
func (e *engine) FetchGroups(ctx context.Context, groupIDs []string) ([]CollaborationGroup, error) {
	valid := make([]string, 0, len(groupIDs))

	for _, id := range groupIDs {
		if sfid.Valid(id) {
			valid = append(valid, id)
		} else {
			log.Warn().Str("group_id", id).Msg("dropping malformed group id from fetch")
		}
	}

	if len(valid) == 0 {
		return nil, nil
	}

	soql := "SELECT " + groupFieldList + " FROM CollaborationGroup WHERE Id IN (" + soqlIDList(valid) + ")"

	var groups []CollaborationGroup
	if err := e.query(ctx, soql, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// HasNetworkField reports whether the org's CollaborationGroup object exposes
// the NetworkId field. The field only exists when digital experiences are
// enabled, so it has to be discovered through describe. The answer is cached
// for the lifetime of the engine.
func (e *engine) HasNetworkField(ctx context.Context) (bool, error) {
	e.describeMu.Lock()
	defer e.describeMu.Unlock()

	if e.hasNetworkField != nil {
		return *e.hasNetworkField, nil
	}

	var describe struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}

	if err := e.get(ctx, e.restPath("sobjects", "CollaborationGroup", "describe"), &describe); err != nil {
		return false, err
	}

	has := false

	for _, f := range describe.Fields {
		if f.Name == "NetworkId" {
			has = true
			break
		}
	}

	e.hasNetworkField = &has

	return has, nil
}

// NetworkIDForGroup resolves the community a group lives in. When the org has
// no NetworkId field, or the group carries none, the configured default
// network id is returned.
func (e *engine) NetworkIDForGroup(ctx context.Context, groupID string) (string, error) {
	has, err := e.HasNetworkField(ctx)
	if err != nil {
		return "", err
	}

	if !has {
		return e.defaultNetworkID, nil
	}

	if !sfid.Valid(groupID) {
		return "", sfid.ErrInvalidID
	}

	var groups []struct {
		NetworkID string `json:"NetworkId"`
	}

	soql := "SELECT NetworkId FROM CollaborationGroup WHERE Id = '" + groupID + "'"
	if err := e.query(ctx, soql, &groups); err != nil {
		return "", err
	}

	if len(groups) == 0 || groups[0].NetworkID == "" {
		return e.defaultNetworkID, nil
	}

	return groups[0].NetworkID, nil
}
