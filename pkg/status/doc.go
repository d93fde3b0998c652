/*
Package status describes what a sweep did, or would do under a dry run.

	            +-------------+
	            |   Report    |
	            |  (one run)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +-----+-----+
	|   Lines   |           |   Files   |
	| (outcome) |           | (outcome) |
	+-----------+           +-----------+

🎯 Purpose:
- Record the classification of every scanned line
- Record what was staged and committed for every target and source
- Format both for people (Formatter)

🔄 Flow:
1. The scanner adds a LineOutcome per line
2. The merger adds a FileOutcome per staged file
3. The commit phase updates each FileOutcome's status
4. Callers render the Report (pkg/log) or inspect it

📝 Design Philosophy:
A Report is filled the same way whether or not the run is a dry run, so a
preview shows exactly what a real run would commit.
*/
package status
