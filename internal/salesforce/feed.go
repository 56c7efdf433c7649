package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"

	"github.com/hartikaaggarwal/salesforce-chatter-bot-groups/internal/sfid"
)

// Message segment types of the Connect API feed item body.
const (
	SegmentTypeText    = "Text"
	SegmentTypeMention = "Mention"
)

// MessageSegment is one part of a feed item body.
type MessageSegment struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	ID   string `json:"id,omitempty"`
}

// FeedElement is the created feed item as returned by the Connect API.
type FeedElement struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// mentionPattern matches {@recordId} markers inside a message body.
var mentionPattern = regexp.MustCompile(`\{@([a-zA-Z0-9]{15,18})\}`)

// Segments splits a message body into text and mention segments. A marker of
// the form {@005xx0000012345} becomes a mention of that user or group; a
// marker with a malformed id stays literal text.
func Segments(message string) []MessageSegment {
	var (
		segments []MessageSegment
		last     int
	)

	appendText := func(text string) {
		if text == "" {
			return
		}

		segments = append(segments, MessageSegment{Type: SegmentTypeText, Text: text})
	}

	for _, match := range mentionPattern.FindAllStringSubmatchIndex(message, -1) {
		id := message[match[2]:match[3]]
		if !sfid.Valid(id) {
			continue
		}

		appendText(message[last:match[0]])
		segments = append(segments, MessageSegment{Type: SegmentTypeMention, ID: id})
		last = match[1]
	}

	appendText(message[last:])

	return segments
}

// PostFeedElement posts a feed item with mention parsing to the subject.
// A non-empty networkID routes the post through the community scoped
// Connect API, an empty one posts to the org's default network.
func (e *engine) PostFeedElement(ctx context.Context, networkID, subjectID, message string) (*FeedElement, error) {
	payload := struct {
		FeedElementType string `json:"feedElementType"`
		SubjectID       string `json:"subjectId"`
		Body            struct {
			MessageSegments []MessageSegment `json:"messageSegments"`
		} `json:"body"`
	}{
		FeedElementType: "FeedItem",
		SubjectID:       subjectID,
	}
	payload.Body.MessageSegments = Segments(message)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	path := e.restPath("chatter", "feed-elements")
	if networkID != "" {
		path = e.restPath("connect", "communities", networkID, "chatter", "feed-elements")
	}

	var element FeedElement
	if err := e.post(ctx, path, bytes.NewReader(body), &element); err != nil {
		return nil, err
	}

	return &element, nil
}
