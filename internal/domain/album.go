package domain

// Album represents a release grouping one or more tracks.
type Album struct {
	ID            int    `json:"id" bson:"_id"`
	Album         string `json:"album" bson:"album"`
	AlbumArtist   string `json:"albumartist" bson:"albumartist"`
	DiscTotal     int    `json:"disctotal" bson:"disctotal"`
	Genre         string `json:"genre" bson:"genre"`
	OriginalYear  int    `json:"original_year" bson:"original_year"`
	OriginalMonth int    `json:"original_month" bson:"original_month"`
	OriginalDay   int    `json:"original_day" bson:"original_day"`
	Year          int    `json:"year" bson:"year"`
	Month         int    `json:"month" bson:"month"`
	Day           int    `json:"day" bson:"day"`
}
