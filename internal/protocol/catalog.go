package protocol

// Catalog is the read-only item index over a timeline. The tracker
// resolves item calories through it instead of trusting callers to
// pass catalog values along.
type Catalog struct {
	events []TimelineEvent
	items  map[string]Item
	byID   map[string]TimelineEvent
}

// NewCatalog builds the lookup index for a timeline.
func NewCatalog(events []TimelineEvent) *Catalog {
	c := &Catalog{
		events: events,
		items:  make(map[string]Item),
		byID:   make(map[string]TimelineEvent, len(events)),
	}
	for _, ev := range events {
		c.byID[ev.ID] = ev
		for _, item := range ev.Items {
			c.items[item.ID] = item
		}
	}
	return c
}

// Events returns the timeline in display order.
func (c *Catalog) Events() []TimelineEvent {
	return c.events
}

// Event returns the event with the given ID.
func (c *Catalog) Event(id string) (TimelineEvent, bool) {
	ev, ok := c.byID[id]
	return ev, ok
}

// Item returns the catalog item with the given ID.
func (c *Catalog) Item(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// ItemCalories returns the calorie value recorded for an item.
// Medication items and unknown IDs contribute zero.
func (c *Catalog) ItemCalories(id string) int {
	return c.items[id].Calories
}

// HasItem reports whether the item exists in the catalog.
func (c *Catalog) HasItem(id string) bool {
	_, ok := c.items[id]
	return ok
}

// DefaultTimeline returns the fixed bariatric recovery routine.
func DefaultTimeline() []TimelineEvent {
	return []TimelineEvent{
		{
			ID:    "evt_0700_meds",
			Time:  "07:00",
			Title: "Despertar & Meds",
			Type:  TypeMedication,
			Icon:  "pill",
			Items: []Item{
				{ID: "med_venvanse", Name: "Venvanse", Dose: "30mg"},
				{ID: "med_sertralina", Name: "Sertralina", Dose: "25mg"},
				{ID: "med_bup", Name: "Bup", Dose: "100mg"},
				{ID: "med_topiramato", Name: "Topiramato", Dose: "100mg"},
				{ID: "med_vitamina", Name: "Vitamina Bariátrica"},
			},
		},
		{
			ID:    "evt_0700_bkf",
			Time:  "07:15",
			Title: "Café da Manhã",
			Type:  TypeMeal,
			Icon:  "coffee",
			Tip:   "Café rico em proteína. Evite farinhas brancas para não ter pico de insulina.",
			Items: []Item{
				{ID: "food_eggs", Name: "2 Ovos Mexidos", Calories: 160},
				{ID: "food_cheese", Name: "Queijo Minas (2 fat)", Calories: 120},
				{ID: "food_bread", Name: "Pão Int. + Ricota", Calories: 140},
				{ID: "food_yogurt", Name: "Iogurte Proteico", Calories: 90},
				{ID: "food_whey", Name: "Dose Whey Protein", Calories: 120},
			},
		},
		{
			ID:          "evt_1000_water",
			Time:        "10:00",
			Title:       "Hidratação Turbo",
			Type:        TypeHydration,
			Icon:        "droplet",
			Description: "Beba pelo menos 500ml de água agora.",
		},
		{
			ID:          "evt_1130_block",
			Time:        "11:30",
			Title:       "Bloqueio Gástrico",
			Type:        TypeBlock,
			Icon:        "shield",
			Description: "Psyllium + Chia + 300ml Água",
			Warning:     "Essencial para saciedade.",
		},
		{
			ID:    "evt_1200_lunch",
			Time:  "12:00",
			Title: "Almoço Bariátrico",
			Type:  TypeMeal,
			Icon:  "utensils",
			Tip:   "Coma a proteína primeiro. Pare ao sinal de saciedade (o 'suspiro').",
			Items: []Item{
				{ID: "food_chicken_veg", Name: "Frango + Legumes", Calories: 220},
				{ID: "food_fish_puree", Name: "Peixe + Purê", Calories: 200},
				{ID: "food_beef_salad", Name: "Carne Moída + Salada", Calories: 250},
				{ID: "food_omelet_oven", Name: "Omelete de Forno", Calories: 180},
			},
		},
		{
			ID:          "evt_1500_tea",
			Time:        "15:00",
			Title:       "Chá Seca-Barriga",
			Type:        TypeTea,
			Icon:        "tea",
			IsRecipe:    true,
			Description: "Termogênico natural. Beba ao longo da tarde.",
			RecipeIngredients: []string{
				"1L Água",
				"Hibisco",
				"Chá Verde",
				"Anis Estrelado",
			},
		},
		{
			ID:    "evt_1600_snack",
			Time:  "16:00",
			Title: "Lanche Proteico",
			Type:  TypeMeal,
			Icon:  "apple",
			Tip:   "Evite beliscar. Faça uma refeição sentada.",
			Items: []Item{
				{ID: "food_snack_yogurt", Name: "Iogurte Natural", Calories: 80},
				{ID: "food_snack_fruit", Name: "Fruta", Calories: 60},
				{ID: "food_snack_egg", Name: "1 Ovo Cozido", Calories: 70},
				{ID: "food_snack_shake", Name: "Shake de Whey", Calories: 120},
			},
		},
		{
			ID:          "evt_1830_block",
			Time:        "18:30",
			Title:       "Bloqueio Noturno",
			Type:        TypeBlock,
			Icon:        "shield",
			Description: "Psyllium + Chia + Água",
		},
		{
			ID:          "evt_1900_dinner",
			Time:        "19:00",
			Title:       "Jantar Leve",
			Type:        TypeMeal,
			Icon:        "soup",
			Description: "Tome seu Glifage XR 1000mg junto com o jantar.",
			Items: []Item{
				{ID: "food_soup", Name: "Sopa Legumes + Frango", Calories: 150},
				{ID: "food_dinner_omelet", Name: "Omelete (1 ovo)", Calories: 100},
				{ID: "food_pumpkin", Name: "Caldo de Abóbora", Calories: 120},
			},
		},
		{
			ID:      "evt_2100_meds",
			Time:    "21:00",
			Title:   "Meds & Jejum",
			Type:    TypeMedication,
			Icon:    "moon",
			Warning: "Jejum total a partir de agora.",
			Items: []Item{
				{ID: "med_bup_pm", Name: "Bup", Dose: "100mg"},
				{ID: "med_topiramato_pm", Name: "Topiramato", Dose: "50mg"},
			},
		},
	}
}
