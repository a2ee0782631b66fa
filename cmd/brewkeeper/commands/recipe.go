package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/output"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

func recipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes"},
		Short:   "Manage recipes",
	}
	cmd.AddCommand(recipeAddCmd(), recipeListCmd(), recipeSearchCmd(), recipeShowCmd(), recipeDeleteCmd(), recipeExportCmd())
	return cmd
}

// parseIngredient reads ITEM_ID:AMOUNT[:UNIT[:USE[:MINUTES]]]. Liquid
// ingredients use a volume unit, everything else a weight unit.
func parseIngredient(arg string) (domain.IngredientInput, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 5 || parts[0] == "" {
		return domain.IngredientInput{}, fmt.Errorf("%w: ingredient %q must look like ITEM_ID:AMOUNT[:UNIT[:USE[:MINUTES]]]", domain.ErrValidation, arg)
	}
	ing := domain.IngredientInput{ItemID: parts[0], Amount: units.Input(parts[1])}
	if len(parts) > 2 && parts[2] != "" {
		if _, err := units.ParseWeightUnit(parts[2]); err == nil {
			ing.WeightUnit = parts[2]
		} else if _, err := units.ParseVolumeUnit(parts[2]); err == nil {
			ing.Volume, ing.VolumeUnit, ing.Amount = ing.Amount, parts[2], ""
		} else {
			return ing, fmt.Errorf("%w: ingredient %q: unit %q", units.ErrInvalidUnit, arg, parts[2])
		}
	}
	if len(parts) > 3 {
		ing.Use = parts[3]
	}
	if len(parts) > 4 && parts[4] != "" {
		minutes, err := strconv.Atoi(parts[4])
		if err != nil {
			return ing, fmt.Errorf("%w: ingredient %q: minutes must be a whole number", domain.ErrValidation, arg)
		}
		ing.TimeMinutes = minutes
	}
	return ing, nil
}

func recipeAddCmd() *cobra.Command {
	var (
		file        string
		in          domain.RecipeInput
		batch, boil string
		efficiency  string
		ingredients []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe from flags or a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				if err := yaml.Unmarshal(data, &in); err != nil {
					return fmt.Errorf("failed to parse %s: %w", file, err)
				}
			} else {
				in.BatchSize = units.Input(batch)
				in.BoilSize = units.Input(boil)
				in.Efficiency = units.Input(efficiency)
				for _, arg := range ingredients {
					ing, err := parseIngredient(arg)
					if err != nil {
						return err
					}
					in.Ingredients = append(in.Ingredients, ing)
				}
			}
			recipe, err := appCtx.recipes.Create(cmd.Context(), in, prefs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %s (%s)\n", recipe.Name, recipe.ID)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&file, "file", "", "YAML recipe file; other flags are ignored")
	fl.StringVar(&in.Name, "name", "", "recipe name")
	fl.StringVar(&in.Style, "style", "", "beer style")
	fl.StringVar(&in.Notes, "notes", "", "free-form notes")
	fl.StringVar(&batch, "batch", "", "batch size in --vol-unit")
	fl.StringVar(&boil, "boil", "", "boil size in --vol-unit")
	fl.StringVar(&in.VolumeUnit, "vol-unit", "", "volume unit of --batch and --boil (default preferred unit)")
	fl.IntVar(&in.BoilTimeMinutes, "boil-time", 0, "boil time in minutes")
	fl.StringVar(&efficiency, "efficiency", "", "brewhouse efficiency percent")
	fl.StringArrayVarP(&ingredients, "ingredient", "i", nil, "ITEM_ID:AMOUNT[:UNIT[:USE[:MINUTES]]], repeatable")
	return cmd
}

func recipeListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecipes(cmd, "", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format")
	return cmd
}

func recipeSearchCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search recipes by name, style or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecipes(cmd, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format")
	return cmd
}

func recipeReport(cmd *cobra.Command, title string, query string) (*domain.Report, error) {
	prefs, err := appCtx.preferences(cmd.Context())
	if err != nil {
		return nil, err
	}
	list, err := appCtx.recipes.List(cmd.Context(), query)
	if err != nil {
		return nil, err
	}
	views, err := appCtx.recipes.Views(cmd.Context(), list, prefs)
	if err != nil {
		return nil, err
	}
	return output.NewReport(title, prefs, nil, views), nil
}

func listRecipes(cmd *cobra.Command, query, format string) error {
	report, err := recipeReport(cmd, "Recipes", query)
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), format, report)
}

func recipeShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a recipe with its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			recipe, err := appCtx.recipes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, err := appCtx.recipes.View(cmd.Context(), *recipe, prefs)
			if err != nil {
				return err
			}
			report := output.NewReport(recipe.Name, prefs, nil, []domain.RecipeView{view})
			return output.Write(cmd.OutOrStdout(), format, report)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format")
	return cmd
}

func recipeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.recipes.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func recipeExportCmd() *cobra.Command {
	var format, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every recipe to a report file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := recipeReport(cmd, "Recipes", "")
			if err != nil {
				return err
			}
			name, err := output.GenerateReport(report, format, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "detailed-csv", "output format")
	cmd.Flags().StringVarP(&dir, "output", "o", ".", "directory to write the report to")
	return cmd
}
