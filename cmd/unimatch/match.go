package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unimatch/backend/internal/domain"
	"github.com/unimatch/backend/internal/matching"
	"github.com/unimatch/backend/internal/usecase"
)

type matchOptions struct {
	profilePath string
	explain     bool
	json        bool
}

func newMatchCmd(root *rootOptions) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank the catalog for a profile file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "", "student profile YAML or JSON file (- for stdin)")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "show raw points for every ranked institution")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print matches as JSON")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runMatch(cmd *cobra.Command, root *rootOptions, opts *matchOptions) error {
	ctx := cmd.Context()
	log := root.logger()
	defer log.Sync()

	profile, err := readProfile(cmd.InOrStdin(), opts.profilePath)
	if err != nil {
		return err
	}
	profile, err = usecase.NewProfileNormalizer(log, root.debug).Normalize(profile)
	if err != nil {
		return err
	}

	cat, err := root.loadCatalog(ctx)
	if err != nil {
		return err
	}
	institutions, err := cat.All(ctx)
	if err != nil {
		return err
	}

	matches := matching.ComputeMatches(profile, institutions)

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Fprintln(out, "no matching institutions")
		return nil
	}

	for i, m := range matches {
		fmt.Fprintf(out, "%2d. %s (%s)  %d%%\n", i+1, m.Name, m.ID, m.MatchScore)
		if opts.explain {
			res, _ := matching.Score(profile, m.Institution)
			fmt.Fprintf(out, "    raw %d/%d\n", res.Raw, matching.MaxRawScore)
		}
		for _, reason := range m.MatchReasons {
			fmt.Fprintf(out, "    - %s\n", reason)
		}
	}
	return nil
}

// readProfile decodes a YAML (or JSON) profile from path, or from stdin when path is "-"
func readProfile(stdin io.Reader, path string) (domain.StudentProfile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.StudentProfile{}, fmt.Errorf("read profile: %w", err)
	}

	profile := domain.DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return domain.StudentProfile{}, fmt.Errorf("%w: decode profile: %v", domain.ErrInvalidRequest, err)
	}
	return profile, nil
}
