package regions

import (
	"fmt"
	"sort"
	"strings"

	"riotcli/internal/domain"
)

const (
	Asia     domain.RegionCluster = "asia"
	Americas domain.RegionCluster = "americas"
	Europe   domain.RegionCluster = "europe"
	SEA      domain.RegionCluster = "sea"
)

// Platforms grouped by the regional routing value used for account and match queries.
var RegionList = map[domain.RegionCluster][]domain.PlatformCode{
	Asia:     {"jp1", "kr", "oc1"},
	Americas: {"na1", "br1", "la1", "la2"},
	Europe:   {"euw1", "eun1", "tr1", "ru", "me1"},
	SEA:      {"sg2", "tw2", "vn2"},
}

var platformToRegion = func() map[domain.PlatformCode]domain.RegionCluster {
	m := make(map[domain.PlatformCode]domain.RegionCluster)
	for region, platforms := range RegionList {
		for _, p := range platforms {
			m[p] = region
		}
	}
	return m
}()

// Parse normalizes raw input into a known platform code.
func Parse(raw string) (domain.PlatformCode, error) {
	p := domain.PlatformCode(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := platformToRegion[p]; !ok {
		return "", fmt.Errorf("unknown platform code %q: %w", raw, domain.ErrInputMalformed)
	}
	return p, nil
}

// RegionOf returns the routing cluster of a platform.
func RegionOf(platform domain.PlatformCode) (domain.RegionCluster, error) {
	region, ok := platformToRegion[platform]
	if !ok {
		return "", fmt.Errorf("the platform %s doesn't exist: %w", platform, domain.ErrInputMalformed)
	}
	return region, nil
}

// AccountRegionOf returns the cluster that serves account lookups for a
// platform. account-v1 has no sea host, so SEA platforms resolve on asia.
func AccountRegionOf(platform domain.PlatformCode) (domain.RegionCluster, error) {
	region, err := RegionOf(platform)
	if err != nil {
		return "", err
	}
	if region == SEA {
		return Asia, nil
	}
	return region, nil
}

// Platforms lists every known platform code in sorted order.
func Platforms() []domain.PlatformCode {
	out := make([]domain.PlatformCode, 0, len(platformToRegion))
	for p := range platformToRegion {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
