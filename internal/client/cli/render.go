package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/client/viewmodel"
)

func (a *App) printCats(vm *viewmodel.ViewModel, cats []models.Cat) {
	if vm.Empty() {
		a.printf("No cats yet.\n")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBREED\tPERSONALITY\tORIGIN\tOWNER\t")
	for _, c := range cats {
		mark := ""
		if vm.IsDeleting(c.ID) {
			mark = " (deleting)"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%s\t%s\t%s\t%s\t\n",
			c.ID, c.Name, mark, c.Breed, c.Personality, orDash(c.Origin), orDash(c.OwnerName()))
	}
	_ = tw.Flush()
}

func (a *App) printCat(c models.Cat) {
	a.printf("#%d %s\n", c.ID, c.Name)
	a.printf("Breed: %s\n", c.Breed)
	a.printf("Personality: %s\n", c.Personality)
	if c.Origin != "" {
		a.printf("Origin: %s\n", c.Origin)
	}
	if c.Age != nil {
		a.printf("Age: %d\n", *c.Age)
	}
	if c.Color != "" {
		a.printf("Color: %s\n", c.Color)
	}
	if c.Weight != nil {
		a.printf("Weight: %s kg\n", strconv.FormatFloat(*c.Weight, 'f', -1, 64))
	}
	if c.Description != "" {
		a.printf("Description: %s\n", c.Description)
	}
	if name := c.OwnerName(); name != "" {
		a.printf("Owner: %s\n", name)
	} else if id, ok := c.OwnerID(); ok {
		a.printf("Owner: user #%d\n", id)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
