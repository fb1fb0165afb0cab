// Package generator runs a form submit end to end. It resolves the collected
// values against a form definition, rejects submits with missing required
// fields or an item name already declared in the target item file, and then
// writes, in order, the translation entry, the world model block and the item
// block under the game's `media/` layout:
//
//	media/lua/shared/translate/<LANG>/<Module>_ItemName_<LANG>.txt
//	media/scripts/generated/<Module>_Models.txt
//	media/scripts/generated/items/<Module>_Food.txt
//
// Each write goes through scriptfile.InsertBlock, so re-running a submit never
// duplicates a block.
package generator
