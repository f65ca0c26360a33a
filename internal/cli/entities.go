package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ontoq/internal/model"
	"github.com/aidanlsb/ontoq/internal/ontology"
	"github.com/aidanlsb/ontoq/internal/query"
	"github.com/aidanlsb/ontoq/internal/ui"
)

var (
	entitiesClasses    bool
	entitiesProperties bool
)

// PropertyResult is one property in 'ontoq entities --properties'.
type PropertyResult struct {
	IRI   string `json:"iri"`
	Label string `json:"label,omitempty"`
	Kind  string `json:"kind"`
}

// EntitiesResult is the JSON payload of 'ontoq entities'.
type EntitiesResult struct {
	Entities   int              `json:"entities"`
	Classes    int              `json:"classes"`
	ClassList  []EntityResult   `json:"class_list,omitempty"`
	Properties []PropertyResult `json:"properties,omitempty"`
}

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Show the entity and class universes in scope",
	Long: `Prints the size of the two universes negation and absence queries
complement against: every entity in the configured ontologies, and every class.

Examples:
  ontoq entities
  ontoq entities --classes
  ontoq entities --properties --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return fail(err)
		}

		universe := query.NewEngine(catalog, nil, query.WithLogger(logger)).Universe()
		all, classes := universe.Entities(), universe.Classes()

		result := EntitiesResult{Entities: all.Len(), Classes: classes.Len()}
		if entitiesClasses {
			result.ClassList = describeFromCatalog(catalog, classes.Sorted())
		}
		if entitiesProperties {
			for _, p := range catalog.Properties() {
				result.Properties = append(result.Properties, PropertyResult{IRI: p.IRI, Label: p.Label, Kind: p.Kind.String()})
			}
		}

		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: result.Entities})
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow(ui.Muted.Render("Entities:"), ui.Accent.Render(fmt.Sprint(result.Entities)))
		tbl.AddRow(ui.Muted.Render("Classes:"), ui.Accent.Render(fmt.Sprint(result.Classes)))
		fmt.Print(tbl.String())

		if len(result.ClassList) > 0 {
			fmt.Printf("\n%s\n", ui.Header("Classes"))
			printEntities(result.ClassList)
		}
		if len(result.Properties) > 0 {
			fmt.Printf("\n%s\n", ui.Header("Properties"))
			props := ui.NewTable(3)
			for _, p := range result.Properties {
				props.AddRow(p.Label, ui.Muted.Render(p.Kind), ui.IRI(p.IRI))
			}
			fmt.Print(props.String())
		}
		return nil
	},
}

func describeFromCatalog(catalog *ontology.Catalog, ids []model.EntityID) []EntityResult {
	out := make([]EntityResult, 0, len(ids))
	for _, id := range ids {
		r := EntityResult{IRI: string(id), Name: catalog.DisplayName(id)}
		if e, ok := catalog.Entity(id); ok {
			r.Kind = e.Kind
		}
		out = append(out, r)
	}
	return out
}

func init() {
	entitiesCmd.Flags().BoolVar(&entitiesClasses, "classes", false, "List every class")
	entitiesCmd.Flags().BoolVar(&entitiesProperties, "properties", false, "List every property filters can refer to")
	rootCmd.AddCommand(entitiesCmd)
}
