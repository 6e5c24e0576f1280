package dto

type PlayerSearchRequest struct {
	GameName string `json:"gameName" validate:"required,min=1,max=16"`
	TagLine  string `json:"tagLine" validate:"required,min=1,max=5"`
}

type PlayerSearchResponse struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Found    bool   `json:"found"`
}

type LinkAccountResponse struct {
	Message string `json:"message"`
	Linked  bool   `json:"linked"`
	Puuid   string `json:"puuid"`
}

type UnlinkAccountResponse struct {
	Message  string `json:"message"`
	Unlinked bool   `json:"unlinked"`
}

type LinkStatusResponse struct {
	Linked   bool    `json:"linked"`
	GameName *string `json:"gameName,omitempty"`
	TagLine  *string `json:"tagLine,omitempty"`
	Puuid    *string `json:"puuid,omitempty"`
}
