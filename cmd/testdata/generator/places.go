package generator

import (
	"encoding/json"
	"io"
)

// CatalogEntry mirrors one value of the reference table.
type CatalogEntry struct {
	State string `json:"ste"`
	GCC   string `json:"gcc"`
	SAL   string `json:"sal"`
}

// Catalog is a small reference table covering every place in Places.
var Catalog = map[string]CatalogEntry{
	"sydney":           {"1", "1gsyd", "13730"},
	"melbourne":        {"2", "2gmel", "21640"},
	"brisbane":         {"3", "3gbri", "30379"},
	"adelaide":         {"4", "4gade", "40009"},
	"perth":            {"5", "5gper", "50473"},
	"hobart":           {"6", "6ghob", "60249"},
	"darwin":           {"7", "7gdar", "70073"},
	"canberra":         {"8", "8acte", "80014"},
	"bankstown (nsw)":  {"1", "1gsyd", "10187"},
	"richmond (vic.)":  {"2", "2gmel", "22177"},
	"richmond (nsw)":   {"1", "1gsyd", "13329"},
	"fremantle":        {"5", "5gper", "50291"},
	"glenorchy (tas.)": {"6", "6ghob", "60212"},
	"palmerston (nt)":  {"7", "7gdar", "70063"},
	"southport (qld)":  {"3", "3rqld", "32671"},
	"glenelg (sa)":     {"4", "4gade", "40243"},
	"christmas island": {"9", "9oter", "90004"},
	"albury":           {"1", "1rnsw", "10050"},
	"joondalup (wa)":   {"5", "5gper", "50406"},
	"queanbeyan (nsw)": {"1", "1rnsw", "13296"},
	"belconnen":        {"8", "8acte", "80010"},
	"sandy bay (tas.)": {"6", "6ghob", "60545"},
	"st kilda (vic.)":  {"2", "2gmel", "22343"},
	"woolloongabba":    {"3", "3gbri", "32917"},
	"norfolk island":   {"9", "9oter", "90003"},
}

// Places are location strings as authors write them. Some resolve through
// each lookup layer, some never resolve.
var Places = []string{
	"Sydney, New South Wales",
	"Melbourne, Victoria",
	"Brisbane, Queensland",
	"Adelaide, South Australia",
	"Perth, Western Australia",
	"Hobart, Tasmania",
	"Darwin, Northern Territory",
	"Canberra, Australian Capital Territory",
	"Bankstown, New South Wales",
	"Richmond, Victoria",
	"Richmond, New South Wales",
	"Fremantle",
	"Glenorchy, Tasmania",
	"Palmerston, Northern Territory",
	"Glenelg, South Australia",
	"Belconnen",
	"St Kilda, Victoria",
	"Woolloongabba",
	"Norfolk Island",
	"Christmas Island, Australia",
	"Southport, Queensland",
	"Albury, New South Wales",
	"Auckland, New Zealand",
	"Richmond",
	"Australia",
}

// WriteCatalog writes Catalog as JSON.
func WriteCatalog(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Catalog)
}
