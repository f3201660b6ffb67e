package remote

import "github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/catalog"

func testFilter() catalog.Filter {
	return catalog.Filter{
		CategoryID: 5,
		BrandIDs:   []int64{3, 7},
		Query:      "gloves",
		Page:       2,
	}
}
