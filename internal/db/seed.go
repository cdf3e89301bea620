package db

import (
	"database/sql"
	"fmt"
)

// modeSeed mirrors the core mode registry into the modes table so foreign
// keys and reporting queries can join on it.
var modeSeed = []struct {
	code             string
	name             string
	icon             string
	baseInterval     int // 0 = not a rep mode
	defaultThreshold int
}{
	{"NM", "New Memorization", "🌱", 0, 0},
	{"DR", "Daily Reps", "📅", 1, 7},
	{"WR", "Weekly Reps", "🗓️", 7, 7},
	{"FR", "Fortnightly Reps", "🌗", 14, 7},
	{"MR", "Monthly Reps", "🌖", 30, 7},
	{"FC", "Full Cycle", "🔄", 0, 0},
	{"SR", "SRS", "🔁", 0, 0},
}

// surahSeed lists the 114 surahs with their start page in the standard
// 604-page Madani mushaf. A page's surah is the last one starting at or
// before it.
var surahSeed = []struct {
	name      string
	startPage int
}{
	{"Al-Fatihah", 1}, {"Al-Baqarah", 2}, {"Aal-E-Imran", 50}, {"An-Nisa", 77},
	{"Al-Ma'idah", 106}, {"Al-An'am", 128}, {"Al-A'raf", 151}, {"Al-Anfal", 177},
	{"At-Tawbah", 187}, {"Yunus", 208}, {"Hud", 221}, {"Yusuf", 235},
	{"Ar-Ra'd", 249}, {"Ibrahim", 255}, {"Al-Hijr", 262}, {"An-Nahl", 267},
	{"Al-Isra", 282}, {"Al-Kahf", 293}, {"Maryam", 305}, {"Ta-Ha", 312},
	{"Al-Anbiya", 322}, {"Al-Hajj", 332}, {"Al-Mu'minun", 342}, {"An-Nur", 350},
	{"Al-Furqan", 359}, {"Ash-Shu'ara", 367}, {"An-Naml", 377}, {"Al-Qasas", 385},
	{"Al-Ankabut", 396}, {"Ar-Rum", 404}, {"Luqman", 411}, {"As-Sajdah", 415},
	{"Al-Ahzab", 418}, {"Saba", 428}, {"Fatir", 434}, {"Ya-Sin", 440},
	{"As-Saffat", 446}, {"Sad", 453}, {"Az-Zumar", 458}, {"Ghafir", 467},
	{"Fussilat", 477}, {"Ash-Shura", 483}, {"Az-Zukhruf", 489}, {"Ad-Dukhan", 496},
	{"Al-Jathiyah", 499}, {"Al-Ahqaf", 502}, {"Muhammad", 507}, {"Al-Fath", 511},
	{"Al-Hujurat", 515}, {"Qaf", 518}, {"Adh-Dhariyat", 520}, {"At-Tur", 523},
	{"An-Najm", 526}, {"Al-Qamar", 528}, {"Ar-Rahman", 531}, {"Al-Waqi'ah", 534},
	{"Al-Hadid", 537}, {"Al-Mujadila", 542}, {"Al-Hashr", 545}, {"Al-Mumtahanah", 549},
	{"As-Saff", 551}, {"Al-Jumu'ah", 553}, {"Al-Munafiqun", 554}, {"At-Taghabun", 556},
	{"At-Talaq", 558}, {"At-Tahrim", 560}, {"Al-Mulk", 562}, {"Al-Qalam", 564},
	{"Al-Haqqah", 566}, {"Al-Ma'arij", 568}, {"Nuh", 570}, {"Al-Jinn", 572},
	{"Al-Muzzammil", 574}, {"Al-Muddaththir", 575}, {"Al-Qiyamah", 577}, {"Al-Insan", 578},
	{"Al-Mursalat", 580}, {"An-Naba", 582}, {"An-Nazi'at", 583}, {"Abasa", 585},
	{"At-Takwir", 586}, {"Al-Infitar", 587}, {"Al-Mutaffifin", 587}, {"Al-Inshiqaq", 589},
	{"Al-Buruj", 590}, {"At-Tariq", 591}, {"Al-A'la", 591}, {"Al-Ghashiyah", 592},
	{"Al-Fajr", 593}, {"Al-Balad", 594}, {"Ash-Shams", 595}, {"Al-Layl", 595},
	{"Ad-Duha", 596}, {"Ash-Sharh", 596}, {"At-Tin", 597}, {"Al-Alaq", 597},
	{"Al-Qadr", 598}, {"Al-Bayyinah", 598}, {"Az-Zalzalah", 599}, {"Al-Adiyat", 599},
	{"Al-Qari'ah", 600}, {"At-Takathur", 600}, {"Al-Asr", 601}, {"Al-Humazah", 601},
	{"Al-Fil", 601}, {"Quraysh", 602}, {"Al-Ma'un", 602}, {"Al-Kawthar", 602},
	{"Al-Kafirun", 603}, {"An-Nasr", 603}, {"Al-Masad", 603}, {"Al-Ikhlas", 604},
	{"Al-Falaq", 604}, {"An-Nas", 604},
}

const totalPages = 604

// juzForPage maps a mushaf page to its juz in the standard layout: juz 1
// covers pages 1-21, each later juz covers 20 pages, juz 30 runs to the end.
func juzForPage(page int) int {
	if page < 22 {
		return 1
	}
	juz := (page-22)/20 + 2
	if juz > 30 {
		juz = 30
	}
	return juz
}

// surahForPage returns the 1-based surah id of the last surah starting at or
// before page.
func surahForPage(page int) int {
	id := 1
	for i, s := range surahSeed {
		if s.startPage > page {
			break
		}
		id = i + 1
	}
	return id
}

// SeedCatalog populates modes, surahs, pages, and one item per page. It is
// idempotent: an already-seeded catalog is left untouched.
func SeedCatalog(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range modeSeed {
		var base, threshold any
		if m.baseInterval > 0 {
			base, threshold = m.baseInterval, m.defaultThreshold
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO modes (code, name, icon, base_interval, default_threshold) VALUES (?, ?, ?, ?, ?)",
			m.code, m.name, m.icon, base, threshold,
		); err != nil {
			return fmt.Errorf("seed modes: %w", err)
		}
	}

	for i, s := range surahSeed {
		if _, err := tx.Exec("INSERT INTO surahs (id, name) VALUES (?, ?)", i+1, s.name); err != nil {
			return fmt.Errorf("seed surahs: %w", err)
		}
	}

	for page := 1; page <= totalPages; page++ {
		if _, err := tx.Exec(
			"INSERT INTO pages (id, page_number, juz_number) VALUES (?, ?, ?)",
			page, page, juzForPage(page),
		); err != nil {
			return fmt.Errorf("seed pages: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO items (page_id, surah_id, part_number, active) VALUES (?, ?, 1, 1)",
			page, surahForPage(page),
		); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// SeedFixtures creates a demo user and hafiz with a spread of item states for
// manual testing. Requires a seeded catalog.
func SeedFixtures(database *sql.DB) error {
	res, err := database.Exec("INSERT INTO users (name, email) VALUES (?, ?)", "Demo User", "demo@example.com")
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	userID, _ := res.LastInsertId()

	res, err = database.Exec(
		`INSERT INTO hafizs (user_id, name, daily_capacity, "current_date") VALUES (?, ?, ?, ?)`,
		userID, "Demo Hafiz", 20, "2024-01-15",
	)
	if err != nil {
		return fmt.Errorf("seed hafiz: %w", err)
	}
	hafizID, _ := res.LastInsertId()

	if _, err := database.Exec(
		"INSERT INTO plans (hafiz_id, start_page, completed) VALUES (?, 2, 0)", hafizID,
	); err != nil {
		return fmt.Errorf("seed plan: %w", err)
	}

	// A handful of states: two solid pages, one in daily reps, one in SRS,
	// the rest not memorized.
	fixtures := []struct {
		itemID       int64
		modeCode     string
		memorized    bool
		nextReview   string
		nextInterval any
	}{
		{2, "FC", true, "", nil},
		{3, "FC", true, "", nil},
		{4, "DR", true, "2024-01-15", 1},
		{5, "SR", true, "2024-01-18", 3},
	}
	for _, f := range fixtures {
		var nextReview any
		if f.nextReview != "" {
			nextReview = f.nextReview
		}
		if _, err := database.Exec(
			`INSERT INTO hafizs_items (hafiz_id, item_id, page_number, mode_code, memorized, next_review, next_interval)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			hafizID, f.itemID, f.itemID, f.modeCode, f.memorized, nextReview, f.nextInterval,
		); err != nil {
			return fmt.Errorf("seed hafizs_items: %w", err)
		}
	}

	return nil
}
