/*
Package commit makes staged file content live without ever leaving a logical
file half-written.

	+-----------+      +-----------+      +-----------+
	|  F.swtxt~2| ---> |  F.swtxt~3|      |           |
	+-----------+      +-----------+      |           |
	|  F.swtxt~1| ---> |  F.swtxt~2|      |  rotation |
	+-----------+      +-----------+      |  (4 steps)|
	|  F        | ---> |  F.swtxt~1|      |           |
	+-----------+      +-----------+      |           |
	|  F.swtxttmp ---> |  F        |      |           |
	+-----------+      +-----------+      +-----------+

🎯 Purpose:
  - Stage new content next to the live file (Stage)
  - Rotate up to three backup generations and swap the staged file in (Committer)
  - Keep the platform's atomic rename behind a single primitive (FS.Replace)

🔒 Guarantees:
  - Each step is one rename, so no file is ever observed half-written
  - Steps for one file finish before the next file starts
  - If step 4 fails after step 3, the previous content is still in F.swtxt~1

📝 Reserved names:
The staging suffix and the backup suffix family are reserved. Source selection
skips them so a run never scans its own artifacts.
*/
package commit
