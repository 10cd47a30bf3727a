package core

import (
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/manifest"
	"github.com/huangsam/onboard/schema"
)

// ExecuteValidate checks a manifest and prints every integrity error.
// It returns ErrInvalidManifest when the manifest fails validation.
func ExecuteValidate(cfg *contract.Config, ow contract.OutputWriter) error {
	loaded, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return err
	}

	source := cfg.ManifestPath
	if source == "" {
		source = "(built-in)"
	}
	report := schema.ValidationReport{
		Source:           source,
		ManifestVersion:  loaded.Manifest.Version,
		ManifestHash:     loaded.Hash,
		ValidationResult: loaded.Validation,
	}
	if err := ow.WriteValidation(report, cfg); err != nil {
		return err
	}
	if !report.Valid {
		return ErrInvalidManifest
	}
	return nil
}
