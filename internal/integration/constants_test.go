package integration_test

import "time"

const (
	// User related constants
	TestUserId       = 1
	TestUserName     = "Ravi Teja"
	TestUserEmail    = "test@example.com"
	TestUserPhone    = "+91 98765 43210"
	TestUserPassword = "Test123!@#"
	TestUserCity     = "Hyderabad"

	// Movie related constants
	TestMovieTitle       = "Kalki 2898 AD"
	TestMovieDescription = "A modern-day avatar of Vishnu descends to earth."
	TestMovieDuration    = 181
	TestMoviePosterUrl   = "https://example.com/kalki.jpg"
	TestMovieRating      = "7.4"

	// Theater related constants
	TestTheaterName    = "Prasads Multiplex"
	TestTheaterAddress = "NTR Marg, Khairatabad"
	TestTheaterCity    = "Hyderabad"
	TestTheaterLat     = 17.4126
	TestTheaterLng     = 78.4071

	// Screen 1 sells classic at 150 and premium at 200, recliners are not sold.
	TestTheaterScreens = `[
		{"screenNumber": 1, "screenType": "IMAX", "totalSeats": 200, "rows": 10, "seatsPerRow": 20,
		 "pricing": {"classic": "150", "premium": "200"}},
		{"screenNumber": 2, "screenType": "4DX", "totalSeats": 60, "rows": 6, "seatsPerRow": 10,
		 "pricing": {"recliner": "450"}}
	]`
)

var (
	TestMovieGenres      = []string{"Sci-Fi", "Action"}
	TestMovieLanguages   = []string{"Telugu", "Hindi"}
	TestMovieCast        = []string{"Prabhas", "Deepika Padukone"}
	TestMovieReleaseDate = time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC)
)
