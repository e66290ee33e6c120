package openweather

// Wire types for the OpenWeatherMap API responses.

type currentResponse struct {
	Dt   int64  `json:"dt"`
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []weatherEntry `json:"weather"`
}

type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []weatherEntry `json:"weather"`
	Pop     float64        `json:"pop"`
}

type weatherEntry struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
