package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Skufu/cardiorisk/internal/config"
	"github.com/Skufu/cardiorisk/internal/features"
	"github.com/Skufu/cardiorisk/internal/httpapi"
	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/risk"
)

type profileFlags struct {
	gender, age, apHi, apLo int
	cholesterol, gluc       int
	smoke, alco, active     int
	weight                  float64
}

func (f profileFlags) profile() (features.PatientProfile, error) {
	for _, chk := range []struct {
		name    string
		v       int
		allowed []int
	}{
		{"gender", f.gender, []int{0, 1}},
		{"cholesterol", f.cholesterol, []int{1, 2, 3}},
		{"gluc", f.gluc, []int{1, 2, 3}},
		{"smoke", f.smoke, []int{0, 1}},
		{"alco", f.alco, []int{0, 1}},
		{"active", f.active, []int{0, 1}},
	} {
		if !containsInt(chk.allowed, chk.v) {
			return features.PatientProfile{}, fmt.Errorf("invalid input: --%s must be one of %v", chk.name, chk.allowed)
		}
	}

	return features.PatientProfile{
		Gender:           features.Gender(f.gender),
		AgeYears:         f.age,
		WeightKg:         f.weight,
		SystolicBP:       f.apHi,
		DiastolicBP:      f.apLo,
		Cholesterol:      features.Level(f.cholesterol),
		Glucose:          features.Level(f.gluc),
		Smokes:           f.smoke == 1,
		DrinksAlcohol:    f.alco == 1,
		PhysicallyActive: f.active == 1,
	}.Clamp(), nil
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func assessCmd() *cobra.Command {
	var (
		f       profileFlags
		asJSON  bool
		modelFn string
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess one patient profile from flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.profile()
			if err != nil {
				return err
			}
			handle, cleanup, err := cliModel(cmd, modelFn)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := risk.NewService(handle).Assess(cmd.Context(), p)
			if err != nil {
				return describeFailure(err)
			}
			return writeReport(cmd.OutOrStdout(), report, asJSON)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.gender, "gender", 1, "0 = female, 1 = male")
	fl.IntVar(&f.age, "age", 40, "age in years (18-100)")
	fl.Float64Var(&f.weight, "weight", 70, "weight in kg (30-200)")
	fl.IntVar(&f.apHi, "ap-hi", 120, "systolic blood pressure, mmHg (80-200)")
	fl.IntVar(&f.apLo, "ap-lo", 80, "diastolic blood pressure, mmHg (50-130)")
	fl.IntVar(&f.cholesterol, "cholesterol", 1, "1 = normal, 2 = above normal, 3 = high")
	fl.IntVar(&f.gluc, "gluc", 1, "1 = normal, 2 = above normal, 3 = high")
	fl.IntVar(&f.smoke, "smoke", 0, "1 if the patient smokes")
	fl.IntVar(&f.alco, "alco", 0, "1 if the patient drinks alcohol")
	fl.IntVar(&f.active, "active", 0, "1 if the patient is physically active")
	fl.BoolVar(&asJSON, "json", false, "print the report as JSON")
	fl.StringVar(&modelFn, "model", "", "model artifact file (overrides MODEL_SOURCE/MODEL_PATH)")
	return cmd
}

func inspectCmd() *cobra.Command {
	var modelFn string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the loaded model artifact and its evaluation metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, cleanup, err := cliModel(cmd, modelFn)
			if err != nil {
				return err
			}
			defer cleanup()

			art, err := handle.Get(cmd.Context())
			if err != nil {
				return describeFailure(err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(httpapi.NewModelView(art))
		},
	}
	cmd.Flags().StringVar(&modelFn, "model", "", "model artifact file (overrides MODEL_SOURCE/MODEL_PATH)")
	return cmd
}

// cliModel resolves the artifact for one-shot commands. An explicit file
// skips configuration entirely.
func cliModel(cmd *cobra.Command, path string) (*model.Handle, func(), error) {
	if path != "" {
		return model.NewHandle(model.FileSource{Path: path}), func() {}, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}
	handle, pool, err := openModel(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	if pool == nil {
		return handle, func() {}, nil
	}
	return handle, pool.Close, nil
}

// describeFailure turns the typed failures into messages that say whether
// the system or the input is at fault.
func describeFailure(err error) error {
	var (
		loadErr   *model.ArtifactLoadError
		schemaErr *features.SchemaMismatchError
		scoreErr  *risk.ScoringError
	)
	switch {
	case errors.As(err, &loadErr):
		return fmt.Errorf("system unavailable: %w", err)
	case errors.As(err, &schemaErr):
		return fmt.Errorf("invalid input: %w", err)
	case errors.As(err, &scoreErr):
		return fmt.Errorf("assessment failed: %w", err)
	default:
		return err
	}
}

type reportJSON struct {
	Probability float64               `json:"probability"`
	Percentage  float64               `json:"percentage"`
	Tier        risk.Tier             `json:"tier"`
	Label       string                `json:"label"`
	Advisory    string                `json:"advisory"`
	Disclaimer  string                `json:"disclaimer"`
	Features    []features.NamedValue `json:"features"`
}

func writeReport(w io.Writer, r risk.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reportJSON{
			Probability: r.Probability,
			Percentage:  r.DisplayPercentage(),
			Tier:        r.Tier,
			Label:       r.Tier.Label(),
			Advisory:    r.AdvisoryText(),
			Disclaimer:  risk.Disclaimer,
			Features:    r.Features.Named(),
		})
	}
	_, err := fmt.Fprintf(w, "%s: %.1f%%\n\n%s\n\n%s\n", r.Tier.Label(), r.DisplayPercentage(), r.AdvisoryText(), risk.Disclaimer)
	return err
}
