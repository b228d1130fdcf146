// Package seed loads officers and beneficiaries from a YAML file into an
// empty or partially filled store. Keys are the same camelCase names the JSON
// API uses.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
)

// File contents of a seed file
type File struct {
	Officers      []model.Officer     `json:"officers"`
	Beneficiaries []model.Beneficiary `json:"beneficiaries"`
}

// Result counts per collection
type Result struct {
	OfficersAdded        int
	OfficersSkipped      int
	BeneficiariesAdded   int
	BeneficiariesSkipped int
}

// Parse decodes YAML into File. The document is routed through JSON so the
// model's json tags and custom types apply unchanged.
func Parse(data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("seed: file is empty")
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed: decode yaml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("seed: re-encode: %w", err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: decode records: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and parses path
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) validate() error {
	names := make(map[string]bool, len(f.Officers))
	for i, o := range f.Officers {
		if o.ID <= 0 {
			return fmt.Errorf("seed: officers[%d]: id must be positive", i)
		}
		if o.Name == "" {
			return fmt.Errorf("seed: officers[%d]: name is required", i)
		}
		if names[o.Name] {
			return fmt.Errorf("seed: officers[%d]: duplicate name %q", i, o.Name)
		}
		names[o.Name] = true
	}
	for i := range f.Beneficiaries {
		b := &f.Beneficiaries[i]
		if b.ID <= 0 {
			return fmt.Errorf("seed: beneficiaries[%d]: id must be positive", i)
		}
		if err := b.ConstructionDetails.Normalize(); err != nil {
			return fmt.Errorf("seed: beneficiaries[%d]: constructionDetails.%w", i, err)
		}
	}
	return nil
}

// Apply inserts every record whose id is not stored yet. Existing rows are
// left untouched, so running the same file twice is harmless.
func Apply(ctx context.Context, repo *repository.Repository, f *File, logger *zap.Logger) (*Result, error) {
	res := &Result{}

	for i := range f.Officers {
		o := f.Officers[i]
		if o.Role == "" {
			o.Role = model.RoleOfficer
		}
		o.Version = 0
		err := repo.Officer.Create(ctx, &o)
		switch {
		case err == nil:
			res.OfficersAdded++
		case errors.Is(err, gorm.ErrDuplicatedKey):
			logger.Info("seed officer exists, skipped", zap.Int64("officer_id", o.ID), zap.String("name", o.Name))
			res.OfficersSkipped++
		default:
			return res, fmt.Errorf("seed: officer %d: %w", o.ID, err)
		}
	}

	for i := range f.Beneficiaries {
		b := f.Beneficiaries[i]
		if b.Images == nil {
			b.Images = model.StringList{}
		}
		if b.Stage == "" {
			b.Stage = model.DefaultStageLabel
		}
		b.Version = 0
		err := repo.Beneficiary.Create(ctx, &b)
		switch {
		case err == nil:
			res.BeneficiariesAdded++
		case errors.Is(err, gorm.ErrDuplicatedKey):
			logger.Info("seed beneficiary exists, skipped", zap.Int64("beneficiary_id", b.ID))
			res.BeneficiariesSkipped++
		default:
			return res, fmt.Errorf("seed: beneficiary %d: %w", b.ID, err)
		}
	}

	return res, nil
}
