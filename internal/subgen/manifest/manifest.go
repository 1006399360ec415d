// Package manifest loads the substitution manifest: the catalogue of target
// methods a generation pass works from. The manifest is the only input side
// the generator knows about; it populates the neutral model and nothing else.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	generrors "github.com/crucible-vm/crucible/internal/subgen/errors"
	"github.com/crucible-vm/crucible/internal/subgen/model"
)

// Version is the manifest schema version this loader accepts.
const Version = 1

// File is the on-disk manifest shape.
type File struct {
	Version int      `json:"version"`
	Targets []Target `json:"targets"`
}

// Target declares one method to substitute.
type Target struct {
	DeclaringType string  `json:"declaring_type"`
	Method        string  `json:"method"`
	Return        string  `json:"return"`
	Receiver      bool    `json:"receiver,omitempty"`
	Params        []Param `json:"params"`
}

// Param declares one parameter and its optional marker. A parameter carries
// at most one marker: stub (with optional alias) or an injection kind.
type Param struct {
	Name   string `json:"name,omitempty"`
	Type   string `json:"type"`
	Stub   bool   `json:"stub,omitempty"`
	Alias  string `json:"alias,omitempty"`
	Inject string `json:"inject,omitempty"`
}

// Load reads and validates the manifest at path.
func Load(path string) ([]model.TargetMethod, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, generrors.NewManifestUnreadable(err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a manifest, producing target method descriptors
// in declaration order. Validation failures abort the load: generation never
// starts from a broken catalogue.
func Parse(r io.Reader) ([]model.TargetMethod, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, generrors.NewManifestUnreadable(err)
	}
	if file.Version != Version {
		return nil, generrors.NewManifestVersion(file.Version, Version)
	}

	var errs generrors.List
	methods := make([]model.TargetMethod, 0, len(file.Targets))
	for i, t := range file.Targets {
		m, targetErrs := convert(i, t)
		if len(targetErrs) > 0 {
			errs = append(errs, targetErrs...)
			continue
		}
		methods = append(methods, m)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return methods, nil
}

func convert(index int, t Target) (model.TargetMethod, generrors.List) {
	var errs generrors.List
	name := t.DeclaringType + "." + t.Method

	if t.DeclaringType == "" || t.Method == "" {
		errs = append(errs, generrors.NewManifestTarget(
			fmt.Sprintf("targets[%d]", index),
			"declaring_type and method are required"))
	}
	if t.Return == "" {
		errs = append(errs, generrors.NewManifestTarget(name,
			`missing return type (use "void" for none)`))
	}

	params := make([]model.Param, 0, len(t.Params))
	for j, p := range t.Params {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("#%d", j)
		}
		if p.Type == "" {
			errs = append(errs, generrors.NewManifestMarker(name, label, "missing type"))
		}
		inject := model.Injection(p.Inject)
		switch inject {
		case model.InjectNone, model.InjectContext, model.InjectProfiler:
		default:
			errs = append(errs, generrors.NewManifestMarker(name, label,
				fmt.Sprintf("unknown injection kind %q", p.Inject)))
			inject = model.InjectNone
		}
		if p.Stub && inject != model.InjectNone {
			errs = append(errs, generrors.NewManifestMarker(name, label,
				"stub and inject markers are mutually exclusive"))
		}
		if p.Stub && p.Name == "" && p.Alias == "" {
			errs = append(errs, generrors.NewManifestMarker(name, label,
				"stub reference needs a name or an alias"))
		}
		params = append(params, model.Param{
			Name:   p.Name,
			Type:   p.Type,
			Stub:   p.Stub,
			Alias:  p.Alias,
			Inject: inject,
		})
	}

	return model.TargetMethod{
		DeclaringType: t.DeclaringType,
		Method:        t.Method,
		Params:        params,
		Return:        t.Return,
		Receiver:      t.Receiver,
	}, errs
}
