package main

import (
	// Import all searcher modules to trigger their init() functions
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/account"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/branch"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/cashbox"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/customer"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/delegate"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/invoice"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/item"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/purchase"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/salesreturn"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/supplier"
	_ "github.com/mohamed66886/erp90-search/pkg/searchers/warehouse"
)
