package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/inventory"
	"github.com/brewkeeper/brewkeeper/internal/output"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// itemFlags binds the flags shared by inventory add and update.
type itemFlags struct {
	in domain.ItemInput
	// quantity flags are bound as strings and copied into in
	amount, volume, color, alpha, attenuation string
}

func (f *itemFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.in.Kind, "kind", "", "fermentable, hop, misc or yeast")
	fl.StringVar(&f.in.Name, "name", "", "item name")
	fl.StringVar(&f.in.Supplier, "supplier", "", "supplier")
	fl.StringVar(&f.in.Notes, "notes", "", "free-form notes")
	fl.StringVar(&f.amount, "amount", "", "stock weight in --unit")
	fl.StringVar(&f.in.WeightUnit, "unit", "", "weight unit of --amount (default preferred unit)")
	fl.StringVar(&f.volume, "volume", "", "stock volume in --vol-unit")
	fl.StringVar(&f.in.VolumeUnit, "vol-unit", "", "volume unit of --volume (default preferred unit)")
	fl.StringVar(&f.color, "color", "", "color of fermentables")
	fl.StringVar(&f.in.ColorScale, "scale", "", "color scale of --color (ebc or srm)")
	fl.StringVar(&f.alpha, "alpha", "", "alpha acid percent (hops)")
	fl.StringVar(&f.in.Form, "form", "", "pellet, whole, liquid, dry...")
	fl.StringVar(&f.in.Laboratory, "lab", "", "yeast laboratory")
	fl.StringVar(&f.in.ProductID, "product", "", "yeast product id")
	fl.StringVar(&f.attenuation, "attenuation", "", "yeast attenuation percent")
}

func (f *itemFlags) input() domain.ItemInput {
	in := f.in
	in.Amount = units.Input(f.amount)
	in.Volume = units.Input(f.volume)
	in.Color = units.Input(f.color)
	in.AlphaAcid = units.Input(f.alpha)
	in.Attenuation = units.Input(f.attenuation)
	return in
}

// merge overlays the flags the user set on an existing item's input.
func (f *itemFlags) merge(cmd *cobra.Command, base domain.ItemInput) domain.ItemInput {
	set := f.input()
	changed := cmd.Flags().Changed
	if changed("kind") {
		base.Kind = set.Kind
	}
	if changed("name") {
		base.Name = set.Name
	}
	if changed("supplier") {
		base.Supplier = set.Supplier
	}
	if changed("notes") {
		base.Notes = set.Notes
	}
	if changed("amount") {
		base.Amount, base.WeightUnit = set.Amount, set.WeightUnit
	}
	if changed("volume") {
		base.Volume, base.VolumeUnit = set.Volume, set.VolumeUnit
	}
	if changed("color") {
		base.Color, base.ColorScale = set.Color, set.ColorScale
	}
	if changed("alpha") {
		base.AlphaAcid = set.AlphaAcid
	}
	if changed("form") {
		base.Form = set.Form
	}
	if changed("lab") {
		base.Laboratory = set.Laboratory
	}
	if changed("product") {
		base.ProductID = set.ProductID
	}
	if changed("attenuation") {
		base.Attenuation = set.Attenuation
	}
	return base
}

// canonicalInput expresses a stored item as input in canonical units.
func canonicalInput(it *domain.Item) domain.ItemInput {
	text := func(v interface{ String() string }, valid bool) units.Input {
		if !valid {
			return ""
		}
		return units.Input(v.String())
	}
	return domain.ItemInput{
		Kind:        string(it.Kind),
		Name:        it.Name,
		Supplier:    it.Supplier,
		Notes:       it.Notes,
		Amount:      text(it.AmountGrams.Decimal, it.AmountGrams.Valid),
		WeightUnit:  string(units.Gram),
		Volume:      text(it.VolumeLiters.Decimal, it.VolumeLiters.Valid),
		VolumeUnit:  string(units.Liter),
		Color:       text(it.ColorEBC.Decimal, it.ColorEBC.Valid),
		ColorScale:  string(units.EBC),
		AlphaAcid:   text(it.AlphaAcid.Decimal, it.AlphaAcid.Valid),
		Form:        it.Form,
		Laboratory:  it.Laboratory,
		ProductID:   it.ProductID,
		Attenuation: text(it.Attenuation.Decimal, it.Attenuation.Valid),
	}
}

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Manage inventory items",
	}
	cmd.AddCommand(inventoryAddCmd(), inventoryListCmd(), inventorySearchCmd(), inventoryShowCmd(),
		inventoryUpdateCmd(), inventoryAdjustCmd(), inventoryDeleteCmd(), inventoryImportCmd(), inventoryExportCmd())
	return cmd
}

func inventoryAddCmd() *cobra.Command {
	var flags itemFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			item, err := appCtx.items.Create(cmd.Context(), flags.input(), prefs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", item.Kind, item.Name, item.ID)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func inventoryListCmd() *cobra.Command {
	var kind, format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listItems(cmd, "", kind, format)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list items of this kind")
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format")
	return cmd
}

func inventorySearchCmd() *cobra.Command {
	var kind, format string
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search items by name, supplier or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listItems(cmd, args[0], kind, format)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only search items of this kind")
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format")
	return cmd
}

func listItems(cmd *cobra.Command, query, kind, format string) error {
	prefs, err := appCtx.preferences(cmd.Context())
	if err != nil {
		return err
	}
	filter := domain.ItemFilter{Query: query}
	if kind != "" {
		if filter.Kind, err = domain.ParseKind(kind); err != nil {
			return err
		}
	}
	items, err := appCtx.items.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	report := output.NewReport("Inventory", prefs, inventory.Views(items, prefs), nil)
	return output.Write(cmd.OutOrStdout(), format, report)
}

func inventoryShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			item, err := appCtx.items.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report := output.NewReport(item.Name, prefs, []domain.ItemView{inventory.View(*item, prefs)}, nil)
			return output.Write(cmd.OutOrStdout(), format, report)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format")
	return cmd
}

func inventoryUpdateCmd() *cobra.Command {
	var flags itemFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the given fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			existing, err := appCtx.items.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in := flags.merge(cmd, canonicalInput(existing))
			item, err := appCtx.items.Update(cmd.Context(), existing.ID, in, prefs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func inventoryAdjustCmd() *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "adjust ID DELTA",
		Short: "Add to (or, with a negative delta, take from) an item's stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			item, err := appCtx.items.Adjust(cmd.Context(), args[0], args[1], unit, prefs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", item.Name,
				units.FormatWeight(item.AmountGrams, prefs.WeightUnit, prefs.WeightPrecision))
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "weight unit of DELTA (default preferred unit)")
	return cmd
}

func inventoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an item that no recipe uses",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.items.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func inventoryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add every item listed in a YAML file",
		Long: `Add every item listed in a YAML file. The file holds a list of items
using the same fields as "inventory add", for example:

  - kind: hop
    name: Cascade
    amount: 2
    weight_unit: oz
    alpha_acid: 5.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var inputs []domain.ItemInput
			if err := yaml.Unmarshal(data, &inputs); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			// Validate everything first so a bad entry imports nothing.
			for i, in := range inputs {
				if _, err := inventory.FromInput(in, prefs); err != nil {
					return fmt.Errorf("item %d: %w", i+1, err)
				}
			}
			for i, in := range inputs {
				if _, err := appCtx.items.Create(cmd.Context(), in, prefs); err != nil {
					return fmt.Errorf("item %d: %w", i+1, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items\n", len(inputs))
			return nil
		},
	}
}

func inventoryExportCmd() *cobra.Command {
	var format, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory report to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := appCtx.preferences(cmd.Context())
			if err != nil {
				return err
			}
			items, err := appCtx.items.List(cmd.Context(), domain.ItemFilter{})
			if err != nil {
				return err
			}
			report := output.NewReport("Inventory", prefs, inventory.Views(items, prefs), nil)
			name, err := output.GenerateReport(report, format, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVarP(&dir, "output", "o", ".", "directory to write the report to")
	return cmd
}
