package store_test

import (
	"context"
	"errors"
	"testing"

	"scentlog/internal/catalog"
	"scentlog/internal/store"
	"scentlog/internal/testsupport"
)

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st := testsupport.MustOpenStore(t, cfg)
	if st.Path() != cfg.DatabasePath() {
		t.Errorf("path = %q, want %q", st.Path(), cfg.DatabasePath())
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A second open must accept the existing schema version.
	st2 := testsupport.MustOpenStore(t, cfg)
	if _, err := st2.Collection(context.Background()); err != nil {
		t.Fatalf("collection after reopen: %v", err)
	}
}

func TestAddToCollection(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	item, err := st.AddToCollection(ctx, "Creed", "Aventus", false, "2023-06-01")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Status != store.StatusHave {
		t.Errorf("status = %q, want have", item.Status)
	}
	if item.AcquiredDate != "2023-06-01" {
		t.Errorf("acquired = %q", item.AcquiredDate)
	}

	// Same fragrance, same form: rejected.
	if _, err := st.AddToCollection(ctx, "Creed", "Aventus", false, ""); !errors.Is(err, store.ErrValidation) {
		t.Errorf("duplicate add = %v, want ErrValidation", err)
	}

	// Same fragrance as a decant: allowed, sharing the fragrance row.
	decant, err := st.AddToCollection(ctx, "Creed", "Aventus", true, "")
	if err != nil {
		t.Fatalf("add decant: %v", err)
	}
	if decant.FragranceID != item.FragranceID {
		t.Errorf("decant fragrance id = %d, want shared %d", decant.FragranceID, item.FragranceID)
	}
	if !decant.IsDecant {
		t.Error("decant flag not persisted")
	}

	if _, err := st.AddToCollection(ctx, "", "Aventus", false, ""); !errors.Is(err, store.ErrValidation) {
		t.Errorf("empty house = %v, want ErrValidation", err)
	}
	if _, err := st.AddToCollection(ctx, "Creed", "Viking", false, "june"); !errors.Is(err, store.ErrValidation) {
		t.Errorf("bad date = %v, want ErrValidation", err)
	}
}

func TestLogOptionsOrderingAndStatusFilter(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	testsupport.AddOwned(t, st, "Diptyque", "Tam Dao")
	creed := testsupport.AddOwned(t, st, "Creed", "Aventus")
	gone := testsupport.AddOwned(t, st, "Chanel", "Coromandel")

	if err := st.MarkGone(ctx, gone.UserFragranceID, "sold", "2024-01-01"); err != nil {
		t.Fatalf("mark gone: %v", err)
	}

	options, err := st.LogOptions(ctx)
	if err != nil {
		t.Fatalf("log options: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("options = %d, want 2 (gone item excluded)", len(options))
	}
	if options[0].House != "Creed" || options[1].House != "Diptyque" {
		t.Errorf("order = %s, %s; want house order Creed, Diptyque", options[0].House, options[1].House)
	}
	if options[0].FragranceID != creed.FragranceID || options[0].UserFragranceID != creed.UserFragranceID {
		t.Errorf("ids = %d/%d, want %d/%d",
			options[0].FragranceID, options[0].UserFragranceID, creed.FragranceID, creed.UserFragranceID)
	}
}

func TestMarkGoneValidation(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	owned := testsupport.AddOwned(t, st, "Creed", "Aventus")

	if err := st.MarkGone(ctx, owned.UserFragranceID, "evaporated", ""); !errors.Is(err, store.ErrValidation) {
		t.Errorf("bad details = %v, want ErrValidation", err)
	}
	if err := st.MarkGone(ctx, 9999, "emptied", ""); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown id = %v, want ErrNotFound", err)
	}
	if err := st.MarkGone(ctx, owned.UserFragranceID, "gifted", "2024-02-02"); err != nil {
		t.Fatalf("mark gone: %v", err)
	}

	item, err := st.CollectionItem(ctx, owned.UserFragranceID)
	if err != nil {
		t.Fatalf("collection item: %v", err)
	}
	if item.Status != store.StatusHad || item.HadDetails != "gifted" || item.GoneDate != "2024-02-02" {
		t.Errorf("item = %+v, want had/gifted/2024-02-02", item)
	}
}

func TestCreateLogAndList(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	owned := testsupport.AddOwned(t, st, "Creed", "Aventus")

	full := store.NewLog{
		FragranceID:     owned.FragranceID,
		UserFragranceID: owned.UserFragranceID,
		LogDate:         "2024-03-05",
		TimeOfDay:       "night",
		Weather:         "cold",
		Enjoyment:       9,
		Notes:           "smoky",
	}
	if _, err := st.CreateLog(ctx, full); err != nil {
		t.Fatalf("create log: %v", err)
	}

	bare := store.NewLog{
		FragranceID:     owned.FragranceID,
		UserFragranceID: owned.UserFragranceID,
		LogDate:         "2024-03-07",
	}
	if _, err := st.CreateLog(ctx, bare); err != nil {
		t.Fatalf("create bare log: %v", err)
	}

	logs, err := st.ListLogs(ctx, 0)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
	if logs[0].LogDate != "2024-03-07" {
		t.Errorf("newest first: got %q", logs[0].LogDate)
	}
	if logs[0].TimeOfDay != "" || logs[0].Weather != "" || logs[0].Enjoyment != 0 || logs[0].Notes != "" {
		t.Errorf("bare log round-trip = %+v, want empty optionals", logs[0])
	}
	if logs[1].FragranceFullName != "Creed Aventus" {
		t.Errorf("full name = %q", logs[1].FragranceFullName)
	}
	if logs[1].TimeOfDay != "night" || logs[1].Weather != "cold" || logs[1].Enjoyment != 9 || logs[1].Notes != "smoky" {
		t.Errorf("full log round-trip = %+v", logs[1])
	}

	limited, err := st.ListLogs(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited logs = %d, want 1", len(limited))
	}
}

func TestCreateLogValidation(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	owned := testsupport.AddOwned(t, st, "Creed", "Aventus")

	base := store.NewLog{
		FragranceID:     owned.FragranceID,
		UserFragranceID: owned.UserFragranceID,
		LogDate:         "2024-03-05",
	}

	cases := []struct {
		name   string
		mutate func(*store.NewLog)
	}{
		{"missing ids", func(l *store.NewLog) { l.FragranceID = 0 }},
		{"bad date", func(l *store.NewLog) { l.LogDate = "5 March" }},
		{"bad time of day", func(l *store.NewLog) { l.TimeOfDay = "noon" }},
		{"bad weather", func(l *store.NewLog) { l.Weather = "stormy" }},
		{"enjoyment too high", func(l *store.NewLog) { l.Enjoyment = 11 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := base
			tc.mutate(&log)
			if _, err := st.CreateLog(ctx, log); !errors.Is(err, store.ErrValidation) {
				t.Errorf("CreateLog = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateLogMarkGoneEmptiesBottle(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	owned := testsupport.AddOwned(t, st, "Creed", "Aventus")

	log := store.NewLog{
		FragranceID:     owned.FragranceID,
		UserFragranceID: owned.UserFragranceID,
		LogDate:         "2024-03-05",
		MarkGone:        true,
	}
	if _, err := st.CreateLog(ctx, log); err != nil {
		t.Fatalf("create log: %v", err)
	}

	item, err := st.CollectionItem(ctx, owned.UserFragranceID)
	if err != nil {
		t.Fatalf("collection item: %v", err)
	}
	if item.Status != store.StatusHad || item.HadDetails != "emptied" || item.GoneDate != "2024-03-05" {
		t.Errorf("item = %+v, want had/emptied with the log date", item)
	}

	options, err := st.LogOptions(ctx)
	if err != nil {
		t.Fatalf("log options: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("options = %d, want the emptied bottle gone", len(options))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	aventus := testsupport.AddOwned(t, st, "Creed", "Aventus")
	tamDao := testsupport.AddOwned(t, st, "Diptyque", "Tam Dao")

	add := func(entryDate string, owned catalog.Entry, timeOfDay string, enjoyment int) {
		t.Helper()
		_, err := st.CreateLog(ctx, store.NewLog{
			FragranceID:     owned.FragranceID,
			UserFragranceID: owned.UserFragranceID,
			LogDate:         entryDate,
			TimeOfDay:       timeOfDay,
			Enjoyment:       enjoyment,
		})
		if err != nil {
			t.Fatalf("create log: %v", err)
		}
	}

	add("2024-03-01", aventus, "day", 8)
	add("2024-03-02", aventus, "night", 10)
	add("2024-03-03", tamDao, "night", 0)

	stats, err := st.Stats(ctx, 10)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalLogs != 3 || stats.DistinctFragrances != 2 {
		t.Errorf("totals = %d/%d, want 3/2", stats.TotalLogs, stats.DistinctFragrances)
	}
	if stats.FirstLogDate != "2024-03-01" || stats.LastLogDate != "2024-03-03" {
		t.Errorf("range = %q..%q", stats.FirstLogDate, stats.LastLogDate)
	}
	if len(stats.MostWorn) != 2 {
		t.Fatalf("most worn = %d, want 2", len(stats.MostWorn))
	}
	if stats.MostWorn[0].FragranceFullName != "Creed Aventus" || stats.MostWorn[0].WearCount != 2 {
		t.Errorf("most worn[0] = %+v", stats.MostWorn[0])
	}
	if stats.MostWorn[0].AvgEnjoyment != 9 {
		t.Errorf("avg enjoyment = %v, want 9", stats.MostWorn[0].AvgEnjoyment)
	}
	if stats.ByTimeOfDay["night"] != 2 || stats.ByTimeOfDay["day"] != 1 {
		t.Errorf("by time of day = %v", stats.ByTimeOfDay)
	}
	if len(stats.ByWeather) != 0 {
		t.Errorf("by weather = %v, want empty", stats.ByWeather)
	}

	empty := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	zero, err := empty.Stats(ctx, 0)
	if err != nil {
		t.Fatalf("empty stats: %v", err)
	}
	if zero.TotalLogs != 0 || len(zero.MostWorn) != 0 {
		t.Errorf("empty stats = %+v", zero)
	}
}
