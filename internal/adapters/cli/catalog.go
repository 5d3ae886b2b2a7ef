package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
)

// Catalog sections
const (
	sectionUnits      = "units"
	sectionStructures = "structures"
	sectionMissiles   = "missiles"
	sectionProjects   = "projects"
	sectionConstants  = "constants"
)

// NewCatalogCommand creates the catalog command
func NewCatalogCommand() *cobra.Command {
	var (
		path  string
		stars int
	)

	cmd := &cobra.Command{
		Use:   "catalog [units|structures|missiles|projects|constants]",
		Short: "Show the game tables",
		Long: `Show the unit, structure, missile and project tables and the pricing
constants. Reads catalog.path from config (or --path); the built-in tables
are used when neither is set. Works without the service.

With --stars, prices and project thresholds are computed for that many stars.

Examples:
  domnus catalog
  domnus catalog units
  domnus catalog projects --stars 1000
  domnus catalog constants --path ./tables.yaml`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{sectionUnits, sectionStructures, sectionMissiles, sectionProjects, sectionConstants},
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = loadConfig().Catalog.Path
			}
			cat, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}

			sections := []string{sectionUnits, sectionStructures, sectionMissiles, sectionProjects, sectionConstants}
			if len(args) == 1 {
				sections = args
			}
			out := cmd.OutOrStdout()
			for _, section := range sections {
				if err := renderCatalogSection(out, cat, section, stars); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Tables YAML file (defaults to catalog.path)")
	cmd.Flags().IntVar(&stars, "stars", 0, "Compute prices and thresholds for this many stars")

	return cmd
}

func renderCatalogSection(w io.Writer, cat *catalog.Catalog, section string, stars int) error {
	headerColor.Fprintln(w, section)

	switch section {
	case sectionUnits:
		table := tablewriter.NewTable(w,
			tablewriter.WithHeader([]string{"Unit", "Offense", "Defense", "Cost", "Fuel", "Hangar", "Trainable"}),
		)
		for _, kind := range cat.UnitKinds() {
			u, _ := cat.Unit(kind)
			_ = table.Append([]string{
				kind,
				strconv.Itoa(u.Offense),
				strconv.Itoa(u.Defense),
				strconv.Itoa(u.Cost),
				strconv.Itoa(u.Fuel),
				strconv.Itoa(u.HangarCapacity),
				strconv.FormatBool(!u.Pool),
			})
		}
		_ = table.Render()

	case sectionStructures:
		table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Structure"}))
		for _, kind := range cat.Structures() {
			_ = table.Append([]string{kind})
		}
		_ = table.Render()
		if stars > 0 {
			fmt.Fprintf(w, "Price at %d stars: %d\n", stars, cat.StructurePrice(stars))
			fmt.Fprintf(w, "Settle price at %d stars: %d (max %d)\n", stars, cat.SettlePrice(stars), cat.MaxSettle(stars))
		}

	case sectionMissiles:
		table := tablewriter.NewTable(w,
			tablewriter.WithHeader([]string{"Missile", "Stars Dmg", "Fuel Dmg", "Pop Dmg", "Cost", "Fuel Cost"}),
		)
		for _, kind := range cat.MissileKinds() {
			m, _ := cat.Missile(kind)
			_ = table.Append([]string{
				kind,
				strconv.Itoa(m.StarsDamage),
				strconv.Itoa(m.FuelDamage),
				strconv.Itoa(m.PopDamage),
				strconv.Itoa(m.Cost),
				strconv.Itoa(m.FuelCost),
			})
		}
		_ = table.Render()

	case sectionProjects:
		table := tablewriter.NewTable(w,
			tablewriter.WithHeader([]string{"Project", "Max Bonus", "Scaled", "Max Points"}),
		)
		for _, kind := range cat.ProjectKinds() {
			p, _ := cat.Project(kind)
			points := "-"
			if !p.Scaled || stars > 0 {
				n, _ := cat.ProjectMaxPoints(kind, stars)
				points = strconv.Itoa(n)
			}
			_ = table.Append([]string{kind, percent(p.MaxBonus), strconv.FormatBool(p.Scaled), points})
		}
		_ = table.Render()

	case sectionConstants:
		raw, err := yaml.Marshal(cat.Constants)
		if err != nil {
			return fmt.Errorf("failed to encode constants: %w", err)
		}
		fmt.Fprint(w, string(raw))

	default:
		return fmt.Errorf("unknown catalog section %q", section)
	}

	fmt.Fprintln(w)
	return nil
}
