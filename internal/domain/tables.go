package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Catalog
	&Product{},
	&Specification{},
	&Highlight{},
	&ProductImage{},
	// Gallery
	&GalleryAsset{},
}
