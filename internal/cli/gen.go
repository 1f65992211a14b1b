package cli

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kinlab/kinchart/pkg/chart"
)

// Name pools for generated demo persons.
var (
	genFirstNames = []string{
		"Anna", "Karl", "Lena", "Jonas", "Mia", "Erik", "Sofia", "Lars",
		"Ingrid", "Oskar", "Elsa", "Nils", "Freja", "Axel", "Greta", "Hugo",
	}
	genLastNames = []string{
		"Berg", "Lind", "Ohlsson", "Dahl", "Strand", "Holm", "Falk", "Nyman",
	}
)

// genCommand creates the gen command for producing demo chart files.
func (c *CLI) genCommand() *cobra.Command {
	var (
		output      string
		generations int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a demo family chart",
		Long: `Generate a demo family chart.

The gen command produces a small synthetic family file for trying out the
layout strategies: a root couple plus the requested number of descendant
generations, with plausible birth dates. The same seed always produces the
same names and dates (person ids are random).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGen(output, generations, seed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "demo-family.json", "output file")
	cmd.Flags().IntVarP(&generations, "generations", "g", 3, "number of descendant generations")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for names and dates")

	return cmd
}

// runGen builds the demo chart and writes it.
func (c *CLI) runGen(output string, generations int, seed int64) error {
	if generations < 1 {
		return fmt.Errorf("generations must be at least 1")
	}

	p := newProgress(c.Logger)
	g := &demoGen{rng: rand.New(rand.NewSource(seed))}
	fam := g.family(generations)
	p.done(fmt.Sprintf("Generated %d persons", len(fam.Persons)))

	if err := chart.WriteFile(fam, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Generated demo family")
	printFile(output)
	printDetail("%d persons, %d relationships", len(fam.Persons), len(fam.Relationships))
	printNewline()
	printNextStep("Render", "kinchart render "+output+" --root "+fam.Persons[0].ID)

	return nil
}

// demoGen holds the generator state.
type demoGen struct {
	rng  *rand.Rand
	fam  chart.Chart
	rels int
}

// family builds a root couple and recurses down the requested number of
// generations.
func (g *demoGen) family(generations int) chart.Chart {
	lastName := g.pick(genLastNames)
	rootYear := 1920
	a := g.person(lastName, rootYear)
	b := g.person(g.pick(genLastNames), rootYear+g.rng.Intn(5))
	g.spouse(a, b)
	g.descend(a, b, lastName, rootYear, generations-1)
	return g.fam
}

// descend adds children for the given couple, each with their own spouse
// and further descendants until depth is exhausted.
func (g *demoGen) descend(parentA, parentB, lastName string, parentYear, depth int) {
	if depth <= 0 {
		return
	}
	children := 1 + g.rng.Intn(3)
	for i := 0; i < children; i++ {
		year := parentYear + 22 + g.rng.Intn(12)
		child := g.person(lastName, year)
		g.parent(parentA, child)
		g.parent(parentB, child)

		// Roughly half the children get a spouse and children of their own.
		if g.rng.Intn(2) == 0 {
			partner := g.person(g.pick(genLastNames), year+g.rng.Intn(6)-3)
			g.spouse(child, partner)
			g.descend(child, partner, lastName, year, depth-1)
		}
	}
}

func (g *demoGen) person(lastName string, birthYear int) string {
	id := uuid.NewString()
	g.fam.Persons = append(g.fam.Persons, chart.Person{
		ID:          id,
		FirstName:   g.pick(genFirstNames),
		LastName:    lastName,
		DateOfBirth: fmt.Sprintf("%04d-%02d-%02d", birthYear, 1+g.rng.Intn(12), 1+g.rng.Intn(28)),
	})
	return id
}

func (g *demoGen) parent(parentID, childID string) {
	g.rels++
	g.fam.Relationships = append(g.fam.Relationships, chart.Relationship{
		ID:   fmt.Sprintf("r%d", g.rels),
		From: parentID,
		To:   childID,
		Type: "parent",
	})
}

func (g *demoGen) spouse(a, b string) {
	g.rels++
	g.fam.Relationships = append(g.fam.Relationships, chart.Relationship{
		ID:   fmt.Sprintf("r%d", g.rels),
		From: a,
		To:   b,
		Type: "spouse",
	})
}

func (g *demoGen) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}
