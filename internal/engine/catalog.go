package engine

// Catalog is the read-only task list supplied to the engine. Iteration order
// is the authored order; scoring ties resolve to the earliest entry.
type Catalog struct {
	tasks []Task
	byID  map[string]*Task
}

func NewCatalog(tasks []Task) *Catalog {
	c := &Catalog{
		tasks: tasks,
		byID:  make(map[string]*Task, len(tasks)),
	}
	for i := range c.tasks {
		c.byID[c.tasks[i].ID] = &c.tasks[i]
	}
	return c
}

func (c *Catalog) Tasks() []Task { return c.tasks }

func (c *Catalog) Get(id string) *Task { return c.byID[id] }

func (c *Catalog) Len() int { return len(c.tasks) }

// DefaultCatalog returns the built-in quest set.
func DefaultCatalog() *Catalog {
	return NewCatalog(builtinTasks())
}

func steps(instructions ...string) []TaskStep {
	out := make([]TaskStep, 0, len(instructions))
	for i, ins := range instructions {
		out = append(out, TaskStep{
			ID:          stepID(i),
			Instruction: ins,
		})
	}
	return out
}

func stepID(i int) string {
	return string(rune('a' + i))
}

// Weekly quests encode their target weekday in the title; the recommender
// matches on that substring for Monday through Friday.
func builtinTasks() []Task {
	return []Task{
		{
			ID:        "morning-reset",
			Title:     "Morning Reset",
			Subtitle:  "Start the day with a clear surface",
			Category:  CategoryDaily,
			Frequency: FrequencyDaily,
			Duration:  10,
			Steps: steps(
				"Make the bed",
				"Clear the nightstand",
				"Open the curtains and crack a window",
			),
			Room: RoomBedroom,
		},
		{
			ID:        "dish-patrol",
			Title:     "Dish Patrol",
			Subtitle:  "No dish left behind",
			Category:  CategoryDaily,
			Frequency: FrequencyDaily,
			Duration:  15,
			Steps: steps(
				"Gather stray dishes from around the home",
				"Wash or load the dishwasher",
				"Wipe the sink basin",
			),
			Room: RoomKitchen,
		},
		{
			ID:        "counter-sweep",
			Title:     "Counter Sweep",
			Subtitle:  "Crumbs have no home here",
			Category:  CategoryDaily,
			Frequency: FrequencyDaily,
			Duration:  5,
			Steps: steps(
				"Clear the counters",
				"Wipe them down with a damp cloth",
			),
			Room: RoomKitchen,
		},
		{
			ID:        "night-tidy",
			Title:     "Night Tidy",
			Subtitle:  "Ten minutes before bed",
			Category:  CategoryDaily,
			Frequency: FrequencyDaily,
			Duration:  10,
			Steps: steps(
				"Return items to their rooms",
				"Fluff the couch cushions",
				"Set out what tomorrow needs",
			),
			Room: RoomLivingRoom,
		},
		{
			ID:        "monday-kitchen-reset",
			Title:     "Monday Kitchen Reset",
			Subtitle:  "Deep-ish kitchen start to the week",
			Category:  CategoryWeekly,
			Frequency: FrequencyWeekly,
			Duration:  25,
			Steps: steps(
				"Wipe down appliance fronts",
				"Clean the stovetop",
				"Toss expired food from the fridge",
				"Sweep and mop the floor",
			),
			Room: RoomKitchen,
		},
		{
			ID:        "tuesday-bathroom-shine",
			Title:     "Tuesday Bathroom Shine",
			Subtitle:  "Porcelain appreciation day",
			Category:  CategoryWeekly,
			Frequency: FrequencyWeekly,
			Duration:  20,
			Steps: steps(
				"Scrub the toilet",
				"Wipe the sink and mirror",
				"Swap the hand towel",
				"Mop the floor",
			),
			Room: RoomBathroom,
		},
		{
			ID:        "wednesday-dust-down",
			Title:     "Wednesday Dust Down",
			Subtitle:  "Mid-week surface pass",
			Category:  CategoryWeekly,
			Frequency: FrequencyWeekly,
			Duration:  15,
			Steps: steps(
				"Dust shelves and sills",
				"Wipe electronics with a dry cloth",
				"Shake out the entry mat",
			),
		},
		{
			ID:        "thursday-floors",
			Title:     "Thursday Floors",
			Subtitle:  "Vacuum the high-traffic paths",
			Category:  CategoryWeekly,
			Frequency: FrequencyWeekly,
			Duration:  20,
			Steps: steps(
				"Pick up anything on the floor",
				"Vacuum carpets and rugs",
				"Sweep hard floors",
			),
		},
		{
			ID:        "friday-fresh-linens",
			Title:     "Friday Fresh Linens",
			Subtitle:  "Clean sheets for the weekend",
			Category:  CategoryWeekly,
			Frequency: FrequencyWeekly,
			Duration:  15,
			Steps: steps(
				"Strip the bed",
				"Start a linen load",
				"Remake the bed with a fresh set",
			),
			Room: RoomBedroom,
		},
		{
			ID:        "entry-blitz",
			Title:     "Entryway Blitz",
			Subtitle:  "First impressions, fast",
			Category:  CategorySpeedClean,
			Frequency: FrequencyAdhoc,
			Duration:  5,
			Steps: steps(
				"Line up the shoes",
				"Hang coats and bags",
				"Shake out the mat",
			),
			Room: RoomEntryway,
		},
		{
			ID:        "ten-minute-rescue",
			Title:     "Ten Minute Rescue",
			Subtitle:  "Guests in ten? Go.",
			Category:  CategorySpeedClean,
			Frequency: FrequencyAdhoc,
			Duration:  10,
			Steps: steps(
				"Grab a basket and collect clutter",
				"Wipe the most visible surfaces",
				"Quick-fluff the living room",
			),
			Room: RoomLivingRoom,
		},
		{
			ID:        "speed-surface-sprint",
			Title:     "Surface Sprint",
			Subtitle:  "Every flat surface, one pass",
			Category:  CategorySpeedClean,
			Frequency: FrequencyAdhoc,
			Duration:  15,
			Steps: steps(
				"Set a timer",
				"Clear and wipe each surface in order",
				"Stop when the timer rings",
			),
		},
		{
			ID:        "fridge-deep-clean",
			Title:     "Fridge Deep Clean",
			Subtitle:  "Shelf by shelf",
			Category:  CategoryDeepClean,
			Frequency: FrequencyMonthly,
			Duration:  45,
			Steps: steps(
				"Empty one shelf at a time",
				"Toss anything expired",
				"Wash shelves and drawers",
				"Wipe the door seals",
				"Restock with the oldest items in front",
			),
			Room: RoomKitchen,
		},
		{
			ID:        "bathroom-deep-clean",
			Title:     "Bathroom Deep Clean",
			Subtitle:  "Grout and all",
			Category:  CategoryDeepClean,
			Frequency: FrequencyMonthly,
			Duration:  60,
			Steps: steps(
				"Apply cleaner to the tub and let it sit",
				"Scrub tile and grout",
				"Descale the showerhead",
				"Clean behind the toilet",
				"Finish with the floor",
			),
			Room: RoomBathroom,
		},
		{
			ID:        "junk-drawer-audit",
			Title:     "Junk Drawer Audit",
			Subtitle:  "One drawer, zero mercy",
			Category:  CategoryDeclutter,
			Frequency: FrequencyMonthly,
			Duration:  20,
			Steps: steps(
				"Empty the drawer completely",
				"Sort into keep, relocate, toss",
				"Wipe the drawer and return keepers",
			),
		},
		{
			ID:        "closet-edit",
			Title:     "Closet Edit",
			Subtitle:  "If it hasn't been worn this year…",
			Category:  CategoryDeclutter,
			Frequency: FrequencyQuarterly,
			Duration:  40,
			Steps: steps(
				"Pull everything from one section",
				"Make a donate pile",
				"Rehang what stays, grouped by type",
				"Bag the donations and put them by the door",
			),
			Room: RoomBedroom,
		},
		{
			ID:        "laundry-cycle",
			Title:     "Laundry Cycle",
			Subtitle:  "Wash, dry, fold, away",
			Category:  CategoryLaundry,
			Frequency: FrequencyWeekly,
			Duration:  20,
			Steps: steps(
				"Sort a load and start the wash",
				"Move to the dryer when done",
				"Fold while it's still warm",
				"Put everything away",
			),
		},
		{
			ID:        "towel-refresh",
			Title:     "Towel Refresh",
			Subtitle:  "Swap and wash the towels",
			Category:  CategoryLaundry,
			Frequency: FrequencyWeekly,
			Duration:  10,
			Steps: steps(
				"Collect used towels",
				"Start a hot wash",
				"Hang fresh towels",
			),
			Room: RoomBathroom,
		},
		{
			ID:        "pet-zone-refresh",
			Title:     "Pet Zone Refresh",
			Subtitle:  "They'd thank you if they could",
			Category:  CategoryPet,
			Frequency: FrequencyWeekly,
			Duration:  15,
			Steps: steps(
				"Wash food and water bowls",
				"Shake out and vacuum the pet bed",
				"Wipe down the surrounding floor",
			),
			Room: RoomPetArea,
		},
		{
			ID:        "window-wash",
			Title:     "Window Wash",
			Subtitle:  "Let the light in",
			Category:  CategorySeasonal,
			Frequency: FrequencyQuarterly,
			Duration:  45,
			Steps: steps(
				"Dust the sills and tracks",
				"Wash the glass inside",
				"Wash the glass outside where reachable",
			),
		},
		{
			ID:        "baseboard-patrol",
			Title:     "Baseboard Patrol",
			Subtitle:  "The forgotten frontier",
			Category:  CategoryMonthly,
			Frequency: FrequencyMonthly,
			Duration:  30,
			Steps: steps(
				"Vacuum the baseboards with a brush head",
				"Wipe with a damp cloth, room by room",
			),
		},
		{
			ID:        "vent-and-filter-check",
			Title:     "Vent and Filter Check",
			Subtitle:  "Breathe easier",
			Category:  CategoryMonthly,
			Frequency: FrequencyMonthly,
			Duration:  25,
			Steps: steps(
				"Vacuum visible vent covers",
				"Check the HVAC filter",
				"Replace the filter if it's due",
			),
		},
	}
}
