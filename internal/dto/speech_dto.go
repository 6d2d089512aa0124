package dto

type SynthesizeRequest struct {
	Text        string  `json:"text" validate:"required"`
	Speaker     int     `json:"speaker"`
	LengthScale float64 `json:"length_scale"`
	NoiseScale  float64 `json:"noise_scale"`
	NoiseWidth  float64 `json:"noise_w"`
	Volume      float64 `json:"volume"`
}
