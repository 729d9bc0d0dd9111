package game

// Category is a weighted-aggregate battle preset. A contestant's score is
// PowerWeight*power + TorqueWeight*torque + SpeedWeight*top_speed, each
// stat taken at its effective (tuned) value.
type Category struct {
	Name         string  `json:"name"`
	PowerWeight  float64 `json:"power_weight"`
	TorqueWeight float64 `json:"torque_weight"`
	SpeedWeight  float64 `json:"speed_weight"`
}
