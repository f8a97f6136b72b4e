package tidal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidal-grabber/tidal-grabber/internal/utils"
)

// patternsByActionKinds maps reference patterns to action kinds.
// Full web URLs (tidal.com, listen.tidal.com, with or without a browse
// segment) and bare "track/123" shorthands all resolve the same way.
//
//nolint:gochecknoglobals,lll // This is a justified global variable: immutable data, performance optimization, and reusability.
var patternsByActionKinds = []struct {
	// Pattern is the regex pattern to match references.
	Pattern *regexp.Regexp
	// Kind is the action kind for matched references.
	Kind ActionKind
}{
	{regexp.MustCompile(`(?:^|/)track/(?P<ID>\d+)/?$`), ActionKindTrack},
	{regexp.MustCompile(`(?:^|/)album/(?P<ID>\d+)/?$`), ActionKindAlbum},
	{regexp.MustCompile(`(?:^|/)artist/(?P<ID>\d+)/?$`), ActionKindArtist},
	{regexp.MustCompile(`(?:^|/)playlist/(?P<ID>[0-9a-fA-F]{8}(?:-[0-9a-fA-F]{4}){3}-[0-9a-fA-F]{12})/?$`), ActionKindPlaylist},
}

// ResolveAction parses a user-supplied reference into an Action.
// Unrecognized references yield ErrUnresolvedReference so the caller
// can log and continue with the rest of the batch.
func ResolveAction(reference string) (*Action, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrUnresolvedReference)
	}

	// Query strings never carry identity, drop them before matching.
	if queryIndex := strings.IndexByte(trimmed, '?'); queryIndex >= 0 {
		trimmed = trimmed[:queryIndex]
	}

	for _, p := range patternsByActionKinds {
		if itemID := utils.ExtractNamedGroup(p.Pattern, "ID", trimmed); itemID != "" {
			return &Action{Kind: p.Kind, ID: itemID}, nil
		}
	}

	return nil, fmt.Errorf("%w: '%s'", ErrUnresolvedReference, reference)
}

// ResolveActions resolves a batch of references, keeping resolution order and
// dropping duplicates. Unresolved references are returned separately so the
// caller can report them without aborting the batch.
func ResolveActions(references []string) (actions []*Action, unresolved []string) {
	seen := make(map[Action]struct{}, len(references))

	for _, reference := range references {
		action, err := ResolveAction(reference)
		if err != nil {
			unresolved = append(unresolved, reference)

			continue
		}

		if _, ok := seen[*action]; ok {
			continue
		}

		seen[*action] = struct{}{}

		actions = append(actions, action)
	}

	return actions, unresolved
}
