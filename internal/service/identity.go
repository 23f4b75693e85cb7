package service

import (
	"fmt"
	"strings"

	"riotcli/internal/domain"
	"riotcli/internal/regions"
)

// ParseRiotID splits "name#tag" at the first separator.
func ParseRiotID(raw string) (domain.PlayerIdentity, error) {
	name, tag, ok := strings.Cut(strings.TrimSpace(raw), "#")
	if !ok {
		return domain.PlayerIdentity{}, fmt.Errorf("riot id %q has no '#' separator: %w", raw, domain.ErrInputMalformed)
	}
	name, tag = strings.TrimSpace(name), strings.TrimSpace(tag)
	if name == "" || tag == "" {
		return domain.PlayerIdentity{}, fmt.Errorf("riot id %q needs both a name and a tag: %w", raw, domain.ErrInputMalformed)
	}
	return domain.PlayerIdentity{GameName: name, TagLine: tag}, nil
}

// ChoosePlatform accepts any known platform code, case-insensitively.
func ChoosePlatform(raw string) (domain.PlatformCode, error) {
	return regions.Parse(raw)
}
