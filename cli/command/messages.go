package command

const allBackupsSucceeded = "All backups completed successfully"
const someBackupsFailed = "Some backups failed - check the logs for details"

const adHocGroupName = "AD_HOC"
