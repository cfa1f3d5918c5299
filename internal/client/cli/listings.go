package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rentafind/rentafind/internal/client/locations"
)

// MyListings shows the signed-in user's own listings.
func (a *App) MyListings(ctx context.Context) error {
	epoch := a.auth.Epoch()
	houses, err := a.api.MyHouses(ctx)
	if err != nil {
		a.handleAPIError(ctx, epoch, err)
		return err
	}
	a.printHouses(houses)
	return nil
}

// AddListing prompts for the listing fields and creates it. The image is
// optional: an empty path publishes the listing without one.
func (a *App) AddListing(ctx context.Context) error {
	ix, err := a.locationIndex(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error loading locations: %s\n", err)
		return err
	}

	houseType, err := GetSimpleText(a.reader, "Type (e.g. 2BHK)", a.out)
	if err != nil {
		return err
	}
	phone, err := GetSimpleText(a.reader, "Contact phone number", a.out)
	if err != nil {
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
	if sel.District == "" {
		fmt.Fprintln(a.out, "A district is required for a listing.")
		return nil
	}
	city, err := GetChoice(a.reader, "City:", ix.Cities(sel.District), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	if err := sel.SelectCity(city); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	if sel.City == "" {
		fmt.Fprintln(a.out, "A city is required for a listing.")
		return nil
	}

	imagePath, err := GetSimpleText(a.reader, "Image file (empty for none)", a.out)
	if err != nil {
		return err
	}
	var image []byte
	imageName := ""
	if imagePath != "" {
		image, err = os.ReadFile(imagePath)
		if err != nil {
			fmt.Fprintf(a.out, "Error reading image: %s\n", err)
			return err
		}
		imageName = filepath.Base(imagePath)
	}

	epoch := a.auth.Epoch()
	house, err := a.api.AddHouse(ctx, houseType, phone, sel.District, sel.City, image, imageName)
	if err != nil {
		a.handleAPIError(ctx, epoch, err)
		return err
	}

	fmt.Fprintf(a.out, "Listing %s created.\n", house.ID)
	return nil
}

// DeleteListing removes one of the user's listings by ID.
func (a *App) DeleteListing(ctx context.Context, id string) error {
	epoch := a.auth.Epoch()
	if err := a.api.DeleteHouse(ctx, id); err != nil {
		a.handleAPIError(ctx, epoch, err)
		return err
	}
	fmt.Fprintf(a.out, "Listing %s deleted.\n", id)
	return nil
}
