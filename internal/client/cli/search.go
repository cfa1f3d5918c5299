package cli

import (
	"context"
	"fmt"

	"github.com/rentafind/rentafind/internal/client/locations"
	"github.com/rentafind/rentafind/internal/client/models"
)

// Search browses public listings, optionally filtered by district and city.
// The district choice drives the city choice; picking a new district clears
// any previously chosen city.
func (a *App) Search(ctx context.Context) error {
	ix, err := a.locationIndex(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error loading locations: %s\n", err)
		return err
	}

	sel := locations.NewSelection(ix)

	district, err := GetChoice(a.reader, "District:", ix.Districts(), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	if err := sel.SelectDistrict(district); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}

	if sel.District != "" {
		city, err := GetChoice(a.reader, "City:", ix.Cities(sel.District), a.out)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
			return err
		}
		if err := sel.SelectCity(city); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
			return err
		}
	}

	houses, err := a.api.SearchHouses(ctx, sel.District, sel.City)
	if err != nil {
		fmt.Fprintf(a.out, "Search failed: %s\n", err)
		return err
	}

	a.printHouses(houses)
	return nil
}

func (a *App) printHouses(houses []models.House) {
	if len(houses) == 0 {
		fmt.Fprintln(a.out, "No listings found.")
		return
	}
	for _, h := range houses {
		img := ""
		if h.HasImage {
			img = " [image]"
		}
		fmt.Fprintf(a.out, "%s  %-8s %s, %s  ph:%s%s\n",
			h.ID, h.Type, h.City, h.District, h.PhoneNumber, img)
	}
}
