package domain

// Track represents a single audio file in the library catalog.
type Track struct {
	ID            int     `json:"id" bson:"_id"`
	AlbumID       int     `json:"album_id" bson:"album_id"`
	Title         string  `json:"title" bson:"title"`
	Artist        string  `json:"artist" bson:"artist"`
	Composer      string  `json:"composer" bson:"composer"`
	Genre         string  `json:"genre" bson:"genre"`
	Track         int     `json:"track" bson:"track"`
	Disc          int     `json:"disc" bson:"disc"`
	OriginalYear  int     `json:"original_year" bson:"original_year"`
	OriginalMonth int     `json:"original_month" bson:"original_month"`
	OriginalDay   int     `json:"original_day" bson:"original_day"`
	Year          int     `json:"year" bson:"year"`
	Month         int     `json:"month" bson:"month"`
	Day           int     `json:"day" bson:"day"`
	Length        float64 `json:"length" bson:"length"`
	Bitrate       int     `json:"bitrate" bson:"bitrate"`

	// Path is the location of the audio file on disk. It is used by the
	// file endpoint and must never appear in a projection.
	Path string `json:"-" bson:"path"`
}
