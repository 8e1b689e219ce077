package domain

// TrackFields maps every queryable track attribute to its accessor. The
// table is the single source of truth for field-name validation: a name is a
// valid track field iff it has an entry here. Path is included so clients
// can enumerate or sort on it, matching the underlying storage schema; the
// projection layer applies its own, narrower whitelist.
var TrackFields = map[string]func(*Track) any{
	"id":             func(t *Track) any { return t.ID },
	"album_id":       func(t *Track) any { return t.AlbumID },
	"title":          func(t *Track) any { return t.Title },
	"artist":         func(t *Track) any { return t.Artist },
	"composer":       func(t *Track) any { return t.Composer },
	"genre":          func(t *Track) any { return t.Genre },
	"track":          func(t *Track) any { return t.Track },
	"disc":           func(t *Track) any { return t.Disc },
	"original_year":  func(t *Track) any { return t.OriginalYear },
	"original_month": func(t *Track) any { return t.OriginalMonth },
	"original_day":   func(t *Track) any { return t.OriginalDay },
	"year":           func(t *Track) any { return t.Year },
	"month":          func(t *Track) any { return t.Month },
	"day":            func(t *Track) any { return t.Day },
	"length":         func(t *Track) any { return t.Length },
	"bitrate":        func(t *Track) any { return t.Bitrate },
	"path":           func(t *Track) any { return t.Path },
}

// AlbumFields is the album counterpart of TrackFields.
var AlbumFields = map[string]func(*Album) any{
	"id":             func(a *Album) any { return a.ID },
	"album":          func(a *Album) any { return a.Album },
	"albumartist":    func(a *Album) any { return a.AlbumArtist },
	"disctotal":      func(a *Album) any { return a.DiscTotal },
	"genre":          func(a *Album) any { return a.Genre },
	"original_year":  func(a *Album) any { return a.OriginalYear },
	"original_month": func(a *Album) any { return a.OriginalMonth },
	"original_day":   func(a *Album) any { return a.OriginalDay },
	"year":           func(a *Album) any { return a.Year },
	"month":          func(a *Album) any { return a.Month },
	"day":            func(a *Album) any { return a.Day },
}
