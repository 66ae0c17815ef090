// Package mmcfg parses Module Manager patch files (.cfg).
//
// Module Manager patch files describe nested configuration nodes and the
// edits to apply to them: which nodes to match, which properties to add,
// change or delete, which mods must be installed for a patch to apply and
// in which pass it runs.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: the syntax tree, canonical formatting and tree walking
// - parser: the grammar and its entry points
// - lint: warnings for constructs that parse but are likely mistakes
// - errors: syntax errors with location, source excerpt and suggestions
//
// # Basic Usage
//
//	doc, warnings, err := mmcfg.ParseAndLint("GameData/MyMod/patches.cfg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range warnings {
//	    fmt.Println(w)
//	}
//	fmt.Println("Top-level nodes:", len(doc.Nodes))
//
// # Patch Structure
//
//	@PART[fuelTank*]:HAS[@MODULE[ModuleEngines]]:NEEDS[RealFuels]:AFTER[RealFuels]
//	{
//	    @mass *= 0.8
//	    %maxTemp = 2000
//	    @MODULE[ModuleEngines*],0
//	    {
//	        !PROPELLANT[Oxidizer] {}
//	    }
//	    #@TEMPLATE[tank]/RESOURCE {}
//	}
//
// # Error Handling
//
// Parsing stops at the first error and returns a *errors.SyntaxError:
//
//	_, err := mmcfg.ParseFile(path)
//	var syntaxErr *mmerrors.SyntaxError
//	if errors.As(err, &syntaxErr) {
//	    fmt.Println(syntaxErr.Detailed())
//	}
package mmcfg
