package core

// CobrandPartner is a retail brand associated with a card application.
type CobrandPartner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LogoText string `json:"logoText"`
}

// CobrandPartners lists the supported retail partnerships. "none" is
// the sentinel for applications without a partner.
var CobrandPartners = []CobrandPartner{
	{ID: "jarir", Name: "Jarir Bookstore", LogoText: "Jarir"},
	{ID: "amazon", Name: "Amazon Saudi Arabia", LogoText: "Amazon"},
	{ID: "extra", Name: "eXtra Electronics", LogoText: "eXtra"},
	{ID: "carrefour", Name: "Carrefour", LogoText: "Carrefour"},
	{ID: "panda", Name: "Panda Retail", LogoText: "Panda"},
	{ID: "danube-hypermarket", Name: "Danube Hypermarket", LogoText: "Danube"},
	{ID: "ikea", Name: "IKEA Saudi Arabia", LogoText: "IKEA"},
	{ID: "danube-supermarket", Name: "Danube Supermarket", LogoText: "Danube"},
	{ID: "none", Name: "No Partner", LogoText: "None"},
}

// CobrandPartnerByID looks up a partner, falling back to the "none"
// partner for empty or unknown ids.
func CobrandPartnerByID(partnerID string) CobrandPartner {
	none := CobrandPartner{ID: "none", Name: "No Partner", LogoText: "None"}
	if partnerID == "" {
		return none
	}
	for _, partner := range CobrandPartners {
		if partner.ID == partnerID {
			return partner
		}
	}
	return none
}
