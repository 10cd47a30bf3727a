package core

import (
	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/manifest"
	"github.com/huangsam/onboard/schema"
)

// BuildRulesListing turns a loaded manifest into its display model.
func BuildRulesListing(loaded manifest.Loaded) schema.RulesListing {
	listing := schema.RulesListing{
		ManifestVersion: loaded.Manifest.Version,
		ManifestHash:    loaded.Hash,
		Categories:      loaded.Manifest.Categories,
		Rules:           make([]schema.RuleListing, 0, len(loaded.Manifest.Rules)),
	}
	for _, r := range loaded.Manifest.Rules {
		listing.TotalWeight += r.Weight.Float()
		listing.Rules = append(listing.Rules, schema.RuleListing{Rule: r, Scored: algo.HasSubScore(r.ID)})
	}
	return listing
}

// ExecuteRules prints the rules of the configured manifest.
// This is a static display that does not need measurements.
func ExecuteRules(cfg *contract.Config, ow contract.OutputWriter) error {
	loaded, err := loadManifest(cfg)
	if err != nil {
		return err
	}
	return ow.WriteRules(BuildRulesListing(loaded), cfg)
}
