package model

// ShowtimeContext captures the screening a checkout was started from.
// It is set once by startCheckout and treated as immutable for the
// lifetime of the booking session.
//
// Fields:
//  MovieTitle     – title shown in the checkout header.
//  PosterURL      – poster image for the header.
//  Directors      – comma separated director names.
//  ScreeningID    – backend identifier of the screening.
//  AuditoriumID   – auditorium the screening plays in.
//  ProjectionType – e.g. "2D", "3D", "IMAX".
//  StartHour      – local start time of the screening ("20:30").
//  StartDate      – local start date of the screening (ISO date).
type ShowtimeContext struct {
    MovieTitle     string `json:"movie_title"`
    PosterURL      string `json:"movie_image"`
    Directors      string `json:"movie_directors"`
    ScreeningID    uint64 `json:"screening_id"`
    AuditoriumID   uint64 `json:"auditorium"`
    ProjectionType string `json:"projection_type"`
    StartHour      string `json:"showtime_hour"`
    StartDate      string `json:"showtime_full_date"`
}
