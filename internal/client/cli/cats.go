package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/client/viewmodel"
)

// List mounts the all-cats screen and prints it.
func (a *App) List(ctx context.Context) error {
	vm, err := a.mountScreen(ctx, viewmodel.AllCats(a.api))
	if err != nil {
		return err
	}
	a.printCats(vm, vm.Cats())
	return nil
}

// Mine mounts the screen of the signed-in user's cats.
func (a *App) Mine(ctx context.Context) error {
	sess, ok := a.currentSession(ctx)
	if !ok {
		return errNotLoggedIn
	}
	vm, err := a.mountScreen(ctx, viewmodel.OwnedBy(a.api, sess.ID))
	if err != nil {
		return err
	}
	a.printCats(vm, vm.Cats())
	return nil
}

// Search filters the current screen without fetching. With no screen yet it
// mounts the all-cats list first.
func (a *App) Search(ctx context.Context, query string) error {
	vm := a.currentScreen()
	if vm == nil {
		var err error
		if vm, err = a.mountScreen(ctx, viewmodel.AllCats(a.api)); err != nil {
			return err
		}
	}
	if vm.State() == viewmodel.StateError {
		return fmt.Errorf("list not loaded: %w, use 'retry'", vm.Err())
	}

	found := vm.Filtered(query)
	if len(found) == 0 && !vm.Empty() {
		a.printf("No cats match %q.\n", query)
		return nil
	}
	a.printCats(vm, found)
	return nil
}

// Retry re-fetches the current screen after a failed load.
func (a *App) Retry(ctx context.Context) error {
	vm := a.currentScreen()
	if vm == nil || vm.State() != viewmodel.StateError {
		a.printf("Nothing to retry.\n")
		return nil
	}
	if err := vm.Retry(ctx); err != nil {
		return err
	}
	a.printCats(vm, vm.Cats())
	return nil
}

func (a *App) Show(ctx context.Context, id int64) error {
	cat, err := a.api.GetCat(ctx, id)
	if err != nil {
		return err
	}
	a.printCat(*cat)
	return nil
}

func (a *App) User(ctx context.Context, id int64) error {
	u, err := a.api.GetUserDetail(ctx, id)
	if err != nil {
		return err
	}
	a.printf("#%d %s <%s>\n", u.ID, u.Name, u.Email)
	if u.Country != "" {
		a.printf("Country: %s\n", u.Country)
	}
	if u.Hobby != "" {
		a.printf("Hobby: %s\n", u.Hobby)
	}
	if u.CreatedAt != nil {
		a.printf("Member since: %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Add prompts for a new cat and creates it. The signed-in user, if any,
// becomes its owner.
func (a *App) Add(ctx context.Context) error {
	form, err := a.readCatForm(models.CatForm{})
	if err != nil {
		return err
	}
	cat, err := form.Cat()
	if err != nil {
		return err
	}
	created, err := a.api.CreateCat(ctx, cat)
	if err != nil {
		return err
	}
	a.printf("Created cat #%d %s.\n", created.ID, created.Name)
	return nil
}

// Edit loads cat id, prompts with its current values and saves the result.
func (a *App) Edit(ctx context.Context, id int64) error {
	current, err := a.api.GetCat(ctx, id)
	if err != nil {
		return err
	}
	form, err := a.readCatForm(models.FormFromCat(*current))
	if err != nil {
		return err
	}
	cat, err := form.Cat()
	if err != nil {
		return err
	}
	updated, err := a.api.UpdateCat(ctx, id, cat)
	if err != nil {
		return err
	}
	a.printf("Updated cat #%d %s.\n", updated.ID, updated.Name)
	return nil
}

// Delete asks for confirmation and deletes cat id. When the cat is on the
// current screen it is removed from it once the server confirms.
func (a *App) Delete(ctx context.Context, id int64) error {
	ok, err := confirm(a.reader, fmt.Sprintf("Delete cat #%d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}

	if vm := a.currentScreen(); vm != nil {
		err := vm.Delete(ctx, id)
		switch {
		case err == nil:
			a.printf("Cat #%d deleted.\n", id)
			return nil
		case errors.Is(err, viewmodel.ErrUnknownCat), errors.Is(err, viewmodel.ErrNotLoaded):
			// not on screen; delete directly
		default:
			return err
		}
	}

	msg, err := a.api.DeleteCat(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg.Message)
	return nil
}

func (a *App) readCatForm(f models.CatForm) (models.CatForm, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"Name", &f.Name},
		{"Breed", &f.Breed},
		{"Personality", &f.Personality},
		{"Origin (optional)", &f.Origin},
		{"Age in years (optional)", &f.Age},
		{"Color (optional)", &f.Color},
		{"Weight in kg (optional)", &f.Weight},
		{"Description (optional)", &f.Description},
	}
	for _, field := range fields {
		v, err := getEditedText(a.reader, field.label, *field.value, a.out)
		if err != nil {
			return f, err
		}
		*field.value = v
	}
	return f, nil
}
