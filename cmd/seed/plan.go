package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/schedule"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

var cuisineNames = []string{
	"Greek", "Italian", "French", "Japanese", "Mexican", "Indian", "Thai", "Spanish",
	"Chinese", "Turkish", "Lebanese", "Moroccan", "Peruvian", "Korean", "Vietnamese",
	"Ethiopian", "Georgian", "Brazilian", "Portuguese", "Hungarian", "Indonesian",
	"Polish", "Swedish", "Argentinian", "Jamaican", "Persian", "Filipino", "Tunisian",
}

var firstNames = []string{
	"Maria", "Nikos", "Eleni", "Giorgos", "Sofia", "Dimitris", "Anna", "Kostas",
	"Luca", "Chiara", "Hiro", "Yuki", "Pablo", "Lucia", "Arjun", "Priya",
	"Camille", "Louis", "Mehmet", "Ayse", "Omar", "Leila", "Ana", "Mateo",
}

var lastNames = []string{
	"Papadopoulos", "Rossi", "Dubois", "Tanaka", "Garcia", "Sharma", "Yilmaz",
	"Haddad", "Silva", "Kim", "Nguyen", "Tesfaye", "Horvath", "Costa", "Moreau",
}

var dishStyles = []string{"Braised", "Grilled", "Roasted", "Stuffed", "Slow-cooked", "Smoked", "Fried", "Cured"}

var dishBases = []string{"lamb", "aubergine", "sea bass", "chickpeas", "pork belly", "octopus", "duck", "lentils", "tofu", "beef cheeks"}

var categories = []string{"starter", "main course", "dessert", "side"}

// pantryExtras go alongside a dish's base ingredient.
var pantryExtras = []string{"olive oil", "garlic", "onion", "butter", "lemon", "chilli", "rice", "tomato", "yoghurt"}

var toolNames = []string{"chef's knife", "cast-iron pan", "stockpot", "wok", "oven", "blender", "mortar and pestle", "grill"}

// sizes controls how large a catalogue to plan.
type sizes struct {
	Cuisines          int
	Cooks             int
	RecipesPerCuisine int
}

// validate rejects catalogues that generation under r could get stuck on.
// Only cuisines picked in the last episode can sit at the cap, so twice
// r.Slots cuisines always leave a full episode's worth. Each cuisine also
// gets a cook qualified for nothing else, and judges need a pool beyond the
// cooks of the episode and the judges resting at the cap.
func (s sizes) validate(r schedule.Rules) error {
	minCuisines := 2 * r.Slots
	minCooks := max(s.Cuisines, r.Slots+2*r.Judges)
	switch {
	case s.Cuisines < minCuisines || s.Cuisines > len(cuisineNames):
		return fmt.Errorf("cuisines must be between %d and %d", minCuisines, len(cuisineNames))
	case s.Cooks < minCooks:
		return fmt.Errorf("need at least %d cooks for %d cuisines", minCooks, s.Cuisines)
	case s.RecipesPerCuisine < 1 || s.RecipesPerCuisine > len(dishStyles)*len(dishBases):
		return fmt.Errorf("recipes per cuisine must be between 1 and %d", len(dishStyles)*len(dishBases))
	}
	return nil
}

// plan is a catalogue drawn from a seeded source. Cuisine references in
// cooks and recipes are indexes into cuisines until apply resolves them.
type plan struct {
	cuisines    []string
	ingredients []service.IngredientRequest
	tools       []string
	cooks       []plannedCook
	recipes     []plannedRecipe
}

type plannedCook struct {
	req      service.CreateCookRequest
	cuisines []int
}

// Ingredient and tool references are indexes into the plan's lists.
type plannedRecipe struct {
	req         service.CreateRecipeRequest
	cuisine     int
	ingredients []plannedIngredient
	tools       []int
}

type plannedIngredient struct {
	ingredient int
	amount     string
	main       bool
}

type counts struct {
	cuisines, ingredients, tools, cooks, recipes int
}

func newPlan(rng *rand.Rand, sz sizes) *plan {
	p := &plan{cuisines: cuisineNames[:sz.Cuisines], tools: toolNames}
	for _, name := range append(append([]string(nil), dishBases...), pantryExtras...) {
		p.ingredients = append(p.ingredients, service.IngredientRequest{Name: name, Calories: 20 + rng.Intn(600)})
	}
	classes := domain.CookClassNames()
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := range sz.Cooks {
		age := 20 + rng.Intn(45)
		birth := now.AddDate(-age, -rng.Intn(12), -rng.Intn(28))

		// The first cook of every cuisine cooks nothing else, which keeps a
		// cook available whenever the cuisine is. The rest pick one to three.
		quals := []int{i % sz.Cuisines}
		if i >= sz.Cuisines {
			for range rng.Intn(3) {
				c := rng.Intn(sz.Cuisines)
				if !containsInt(quals, c) {
					quals = append(quals, c)
				}
			}
		}

		p.cooks = append(p.cooks, plannedCook{
			req: service.CreateCookRequest{
				FirstName:         firstNames[rng.Intn(len(firstNames))],
				LastName:          lastNames[rng.Intn(len(lastNames))],
				BirthDate:         birth.Format(time.DateOnly),
				Phone:             fmt.Sprintf("+30 69%08d", rng.Intn(100_000_000)),
				YearsOfExperience: rng.Intn(age - 17),
				Class:             classes[rng.Intn(len(classes))],
			},
			cuisines: quals,
		})
	}

	for c := range sz.Cuisines {
		// Distinct style and base pairs keep recipe names unique.
		for _, k := range rng.Perm(len(dishStyles) * len(dishBases))[:sz.RecipesPerCuisine] {
			base := k % len(dishBases)
			name := fmt.Sprintf("%s %s", dishStyles[k/len(dishBases)], dishBases[base])

			// The base is the main ingredient; extras sit after the bases.
			ingredients := []plannedIngredient{{ingredient: base, amount: fmt.Sprintf("%d g", 100*(2+rng.Intn(6))), main: true}}
			for _, e := range rng.Perm(len(pantryExtras))[:1+rng.Intn(3)] {
				ingredients = append(ingredients, plannedIngredient{
					ingredient: len(dishBases) + e,
					amount:     fmt.Sprintf("%d g", 10*(1+rng.Intn(10))),
				})
			}

			p.recipes = append(p.recipes, plannedRecipe{
				req: service.CreateRecipeRequest{
					Name:       fmt.Sprintf("%s %s", p.cuisines[c], name),
					Category:   categories[rng.Intn(len(categories))],
					Difficulty: 1 + rng.Intn(5),
					Steps:      fmt.Sprintf("Prepare the %s. Cook until done. Plate and serve.", dishBases[base]),
					Nutrition: &service.NutritionRequest{
						Calories: float64(150 + rng.Intn(700)),
						Carbs:    float64(rng.Intn(90)),
						Fat:      float64(rng.Intn(60)),
						Protein:  float64(rng.Intn(60)),
					},
				},
				cuisine:     c,
				ingredients: ingredients,
				tools:       rng.Perm(len(toolNames))[:1+rng.Intn(3)],
			})
		}
	}

	return p
}

// apply creates the planned catalogue. Cuisines, ingredients and tools that
// already exist are reused and recipes already present are skipped, so
// seeding twice does not fail on names.
func (p *plan) apply(ctx context.Context, catalog *service.CatalogService) (counts, error) {
	var n counts

	ingredientIDs, err := p.applyIngredients(ctx, catalog, &n)
	if err != nil {
		return n, err
	}
	toolIDs, err := p.applyTools(ctx, catalog, &n)
	if err != nil {
		return n, err
	}

	existing, err := catalog.ListCuisines(ctx)
	if err != nil {
		return n, err
	}
	byName := make(map[string]int64, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	ids := make([]int64, len(p.cuisines))
	for i, name := range p.cuisines {
		if id, ok := byName[name]; ok {
			ids[i] = id
			continue
		}
		c, err := catalog.CreateCuisine(ctx, service.CuisineRequest{Name: name})
		if err != nil {
			return n, fmt.Errorf("create cuisine %q: %w", name, err)
		}
		ids[i] = c.ID
		n.cuisines++
	}

	for _, pc := range p.cooks {
		req := pc.req
		for _, c := range pc.cuisines {
			req.CuisineIDs = append(req.CuisineIDs, ids[c])
		}
		if _, err := catalog.CreateCook(ctx, req); err != nil {
			return n, fmt.Errorf("create cook %s %s: %w", req.FirstName, req.LastName, err)
		}
		n.cooks++
	}

	for _, pr := range p.recipes {
		req := pr.req
		req.CuisineID = ids[pr.cuisine]
		for _, in := range pr.ingredients {
			req.Ingredients = append(req.Ingredients, service.RecipeIngredientRequest{
				IngredientID: ingredientIDs[in.ingredient],
				Amount:       in.amount,
				Main:         in.main,
			})
		}
		for _, t := range pr.tools {
			req.ToolIDs = append(req.ToolIDs, toolIDs[t])
		}
		_, err := catalog.CreateRecipe(ctx, req)
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			continue
		case err != nil:
			return n, fmt.Errorf("create recipe %q: %w", req.Name, err)
		}
		n.recipes++
	}

	return n, nil
}

func (p *plan) applyIngredients(ctx context.Context, catalog *service.CatalogService, n *counts) ([]int64, error) {
	existing, err := catalog.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(existing))
	for _, in := range existing {
		byName[in.Name] = in.ID
	}

	ids := make([]int64, len(p.ingredients))
	for i, req := range p.ingredients {
		if id, ok := byName[req.Name]; ok {
			ids[i] = id
			continue
		}
		in, err := catalog.CreateIngredient(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create ingredient %q: %w", req.Name, err)
		}
		ids[i] = in.ID
		n.ingredients++
	}
	return ids, nil
}

func (p *plan) applyTools(ctx context.Context, catalog *service.CatalogService, n *counts) ([]int64, error) {
	existing, err := catalog.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(existing))
	for _, t := range existing {
		byName[t.Name] = t.ID
	}

	ids := make([]int64, len(p.tools))
	for i, name := range p.tools {
		if id, ok := byName[name]; ok {
			ids[i] = id
			continue
		}
		t, err := catalog.CreateTool(ctx, service.ToolRequest{Name: name})
		if err != nil {
			return nil, fmt.Errorf("create tool %q: %w", name, err)
		}
		ids[i] = t.ID
		n.tools++
	}
	return ids, nil
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
