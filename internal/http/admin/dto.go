package admin

// -------------------------
// Application DTOs
// -------------------------

type CreateApplicationRequest struct {
	Name        string `json:"name"`
	UUID        string `json:"uuid"`
	Description string `json:"description"`
}

type UpdateApplicationRequest struct {
	Name        string `json:"name"`
	UUID        string `json:"uuid"`
	Description string `json:"description"`
}
