package utils

import "strings"

// farePairs maps "from|to" (lowercase, alphabetical order) to harga per seat.
// Tarif resmi perusahaan; rute yang belum ada di sini memakai fallback.
var farePairs = map[string]int64{
	pairKey("pasir pengaraian", "pekanbaru"): 150_000,
	pairKey("ujung batu", "pekanbaru"):       130_000,
	pairKey("pasir pengaraian", "kabun"):     120_000,
	pairKey("pasir pengaraian", "tandun"):    100_000,
	pairKey("bangkinang", "pekanbaru"):       100_000,
	pairKey("petapahan", "pekanbaru"):        100_000,
	pairKey("suram", "pekanbaru"):            120_000,
	pairKey("kabun", "pekanbaru"):            120_000,
	pairKey("tandun", "pekanbaru"):           100_000,
}

func pairKey(a, b string) string {
	a = strings.TrimSpace(strings.ToLower(a))
	b = strings.TrimSpace(strings.ToLower(b))
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// ComputeFare returns harga per seat berdasarkan rute (case-insensitive, bidirectional).
// Jika tidak ada yang cocok, akan mengembalikan fallbackPrice (mis: price_per_seat dari trip) atau 0.
func ComputeFare(from, to string, fallbackPrice int64) int64 {
	f := strings.TrimSpace(from)
	t := strings.TrimSpace(to)
	if f == "" || t == "" {
		return fallbackPrice
	}
	if price, ok := farePairs[pairKey(f, t)]; ok {
		return price
	}
	return fallbackPrice
}
